package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/yourusername/secplus-chat/internal/client/transcript"
)

// minWidth keeps bubbles legible in very narrow terminals
const minWidth = 20

// Terminal renders messages for a viewport of the given width
type Terminal struct {
	Width int
}

// Render renders one message
func (r Terminal) Render(msg transcript.Message) string {
	switch m := msg.(type) {
	case transcript.UserMessage:
		return r.user(m)
	case transcript.BotMessage:
		return r.bot(m)
	case transcript.ErrorMessage:
		return r.error(m)
	default:
		return ""
	}
}

// RenderAll renders messages top to bottom, separated by a blank line
func (r Terminal) RenderAll(msgs []transcript.Message) string {
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, r.Render(msg))
	}
	return strings.Join(blocks, "\n\n")
}

func (r Terminal) width() int {
	if r.Width < minWidth {
		return minWidth
	}
	return r.Width
}

// inner is the text width available inside a bordered, padded bubble
func (r Terminal) inner() int {
	return r.width() - 4
}

func (r Terminal) wrap(s string) string {
	return wordwrap.String(EscapeTerminal(s), r.inner())
}

func (r Terminal) user(m transcript.UserMessage) string {
	body := AvatarUser + " " + r.wrap(m.Text)
	bubble := userBubbleStyle.Width(r.inner()).Render(body)
	return lipgloss.PlaceHorizontal(r.width(), lipgloss.Right, bubble)
}

func (r Terminal) bot(m transcript.BotMessage) string {
	res := m.Result
	sections := []string{
		AvatarBot,
		headingStyle.Render(HeadingTranslation),
		r.wrap(res.AzTranslation),
	}

	if len(res.VocabularyList) > 0 {
		sections = append(sections, "", headingStyle.Render(HeadingVocabulary))
		for _, item := range res.VocabularyList {
			line := vocabWordStyle.Render(EscapeTerminal(item.Word)) + " - " +
				vocabDefinitionStyle.Render(EscapeTerminal(item.A2Definition))
			sections = append(sections, wordwrap.String(line, r.inner()))
		}
		sections = append(sections, countStyle.Render(fmt.Sprintf("%s %d", LabelUnknownWords, res.UnknownWordsCount)))
	}

	sections = append(sections,
		"",
		headingStyle.Render(HeadingMiniNote),
		noteStyle.Render(wordwrap.String(EscapeTerminal(res.SecurityPlusMiniNote), r.inner()-2)),
	)

	return botBubbleStyle.Width(r.inner()).Render(strings.Join(sections, "\n"))
}

func (r Terminal) error(m transcript.ErrorMessage) string {
	return errorBubbleStyle.Width(r.width()).Render(r.wrap(m.Text))
}

// EscapeTerminal drops complete escape sequences and makes the remaining
// control and bidi characters visible instead of letting the terminal act on
// them. Newlines and tabs are kept.
func EscapeTerminal(s string) string {
	s = ansi.Strip(s)
	if !strings.ContainsFunc(s, isControl) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isControl(r) {
			b.WriteString(strings.Trim(strconv.QuoteRune(r), "'"))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	// bidi overrides reorder the rest of the line
	return unicode.IsControl(r) || unicode.Is(unicode.Bidi_Control, r)
}
