// Package render turns transcript messages into display text.
//
// HTML output goes through html/template, so every interpolated field is
// escaped for its context. Terminal output escapes control characters so a
// response cannot drive the terminal.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yourusername/secplus-chat/internal/client/transcript"
)

// Section headings and labels, as the web client shows them
const (
	HeadingTranslation = "🇦🇿 Azərbaycan Tərcüməsi"
	HeadingVocabulary  = "📚 Lüğət (A2 Səviyyə)"
	HeadingMiniNote    = "💡 Mini Qeyd"
	LabelUnknownWords  = "Naməlum söz sayı:"

	AvatarUser = "👤"
	AvatarBot  = "🤖"
)

const messageTemplates = `
{{define "user"}}<div class="message user-message" id="msg-{{.ID}}">
  <div class="message-wrapper">
    <div class="message-header">
      <div class="message-avatar">{{avatarUser}}</div>
      <div class="message-content">
        <p>{{.Text}}</p>
      </div>
    </div>
  </div>
</div>{{end}}

{{define "bot"}}<div class="message bot-message" id="msg-{{.ID}}">
  <div class="message-wrapper">
    <div class="message-header">
      <div class="message-avatar">{{avatarBot}}</div>
      <div class="message-content">
        <div class="result-section translation">
          <h3>{{headingTranslation}}</h3>
          <p class="result-text">{{.Result.AzTranslation}}</p>
        </div>
        {{- if .Result.VocabularyList}}
        <div class="result-section vocabulary">
          <h3>{{headingVocabulary}}</h3>
          <div class="vocab-list">
            {{- range .Result.VocabularyList}}
            <div class="vocab-item">
              <div class="vocab-word">{{.Word}}</div>
              <div class="vocab-definition">{{.A2Definition}}</div>
            </div>
            {{- end}}
          </div>
          <p class="word-count">{{labelUnknownWords}} <span>{{.Result.UnknownWordsCount}}</span></p>
        </div>
        {{- end}}
        <div class="result-section mini-note-section">
          <h3>{{headingMiniNote}}</h3>
          <div class="mini-note">
            <p class="result-text">{{.Result.SecurityPlusMiniNote}}</p>
          </div>
        </div>
      </div>
    </div>
  </div>
</div>{{end}}

{{define "error"}}<div class="error-message" id="msg-{{.ID}}" data-expires="{{expires .ExpiresAt}}">{{.Text}}</div>{{end}}

{{define "document"}}<!DOCTYPE html>
<html lang="az">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div class="chat-messages" id="chatMessages">
{{- range .Messages}}
{{message .}}
{{- end}}
</div>
</body>
</html>
{{end}}
`

var templates = template.Must(template.New("messages").Funcs(template.FuncMap{
	"avatarUser":         func() string { return AvatarUser },
	"avatarBot":          func() string { return AvatarBot },
	"headingTranslation": func() string { return HeadingTranslation },
	"headingVocabulary":  func() string { return HeadingVocabulary },
	"headingMiniNote":    func() string { return HeadingMiniNote },
	"labelUnknownWords":  func() string { return LabelUnknownWords },
	"expires":            func(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) },
	"message":            func(transcript.Message) (template.HTML, error) { return "", nil },
}).Parse(messageTemplates))

// documentTemplates must be cloned before templates executes for the first time.
var documentTemplates = template.Must(template.Must(templates.Clone()).Funcs(template.FuncMap{
	"message": func(m transcript.Message) (template.HTML, error) {
		fragment, err := HTML(m)
		// fragment was produced by the escaping templates above
		return template.HTML(fragment), err
	},
}), nil)

// HTML renders one message as an HTML fragment
func HTML(msg transcript.Message) (string, error) {
	name, err := templateName(msg)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, msg); err != nil {
		return "", fmt.Errorf("render %s message: %w", name, err)
	}
	return buf.String(), nil
}

// Document renders a full standalone page of messages, used for transcript export
func Document(title string, msgs []transcript.Message) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Title    string
		Messages []transcript.Message
	}{Title: title, Messages: msgs}
	if err := documentTemplates.ExecuteTemplate(&buf, "document", data); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

func templateName(msg transcript.Message) (string, error) {
	switch msg.(type) {
	case transcript.UserMessage:
		return "user", nil
	case transcript.BotMessage:
		return "bot", nil
	case transcript.ErrorMessage:
		return "error", nil
	default:
		return "", fmt.Errorf("unknown message type %T", msg)
	}
}
