// Package protocol holds the HTTP payloads exchanged with the analysis backend.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrEmptyBody         = errors.New("response body is empty")
	ErrMissingVocabulary = errors.New("response has no vocabulary_list")
	ErrBadWordCount      = errors.New("unknown_words_count is not a whole number")
)

// Endpoint paths on the backend origin
const (
	PathAnalyze = "/analyze"
	PathHealth  = "/health"

	ContentTypeJSON = "application/json"
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// VocabularyItem is one word the backend thinks the learner may not know
type VocabularyItem struct {
	Word         string `json:"word"`
	A2Definition string `json:"a2_definition"`
}

// AnalysisResult is the success body of POST /analyze
type AnalysisResult struct {
	OriginalText         string           `json:"original_text,omitempty"` // echoed by the backend, not rendered
	AzTranslation        string           `json:"az_translation"`
	VocabularyList       []VocabularyItem `json:"vocabulary_list"`
	UnknownWordsCount    int              `json:"unknown_words_count"`
	SecurityPlusMiniNote string           `json:"security_plus_mini_note"`
}

// UnmarshalJSON accepts unknown_words_count as any JSON number with an
// integral value, so 3 and 3.0 both decode to 3.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	aux := struct {
		*plain
		UnknownWordsCount json.Number `json:"unknown_words_count"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	n, err := wholeNumber(aux.UnknownWordsCount)
	if err != nil {
		return err
	}
	r.UnknownWordsCount = n
	return nil
}

func wholeNumber(num json.Number) (int, error) {
	if num == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(num.String()); err == nil {
		return n, nil
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s", ErrBadWordCount, num)
	}
	return int(f), nil
}

// HasVocabulary reports whether the vocabulary section should be shown
func (r *AnalysisResult) HasVocabulary() bool {
	return r != nil && len(r.VocabularyList) > 0
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status              string         `json:"status"`
	GeminiAPIConfigured bool           `json:"gemini_api_configured"`
	Services            ServicesStatus `json:"services"`
}

// ServicesStatus lists per-service health as reported by the backend
type ServicesStatus struct {
	Translation string `json:"translation"`
	AIAnalysis  string `json:"ai_analysis"`
}

// Healthy reports whether the backend says it is up
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

// EncodeAnalyzeRequest encodes the request body for a text.
// Markup characters are sent as-is, the same bytes a browser's JSON.stringify produces.
func EncodeAnalyzeRequest(text string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(AnalyzeRequest{Text: text}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeAnalysisResult decodes a success body. The body must be a JSON object
// carrying a vocabulary_list array (possibly empty).
func DecodeAnalysisResult(data []byte) (*AnalysisResult, error) {
	var result *AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrEmptyBody
	}
	if result.VocabularyList == nil {
		return nil, ErrMissingVocabulary
	}
	return result, nil
}

// DecodeHealthStatus decodes a health body
func DecodeHealthStatus(data []byte) (*HealthStatus, error) {
	var status HealthStatus
	err := json.Unmarshal(data, &status)
	return &status, err
}
