// Package scanner turns raw receipt text into structured pantry rows via
// the language model. The image-to-text step happens on the device; this
// side only structures what the device read.
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/llm"
	"pantry-planner/internal/shared"
)

// OcrItem is one structured receipt row. Items the model could not read
// with confidence carry Readable=false and are never ingested.
type OcrItem struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	ExpirationDate string `json:"expiration_date"`
	Category       string `json:"type"`
	Readable       bool   `json:"readable"`
	Alert          string `json:"alert,omitempty"`
}

// Scanner structures receipt text into pantry items.
type Scanner struct {
	textGen llm.TextGenerator
}

// New creates a Scanner.
func New(textGen llm.TextGenerator) *Scanner {
	return &Scanner{textGen: textGen}
}

// Scan structures the receipt text. It returns only the readable items; if
// nothing on the receipt was readable it returns ErrUnreadableInput so the
// caller can ask the user to retake the photo. Malformed model output is a
// ParseError.
func (s *Scanner) Scan(ctx context.Context, receiptText string) ([]OcrItem, shared.AgentMeta, error) {
	meta := shared.AgentMeta{AgentName: "receipt-scanner"}
	if strings.TrimSpace(receiptText) == "" {
		return nil, meta, apperr.Validation("receipt text is empty")
	}

	prompt := fmt.Sprintf(`
You are a grocery receipt parser. Extract the purchased food items from the receipt text below.
Return the result strictly as a JSON object with this structure:
{
  "items": [
    {
      "name": "item name",
      "quantity": "e.g. 2 or 500g",
      "expiration_date": "estimated, YYYY-MM-DD or empty",
      "type": "category such as Produce, Dairy, Meat, Pantry",
      "readable": true,
      "alert": "optional note when the line was ambiguous"
    }
  ]
}
Mark an item "readable": false when the line is too garbled to name with confidence.
Skip non-food lines (totals, taxes, loyalty points).
Do not include any other text in your response.

Receipt text:
%s
`, receiptText)

	start := time.Now()
	resp, err := s.textGen.GenerateContent(ctx, prompt)
	meta.Latency = time.Since(start)
	meta.Usage = resp.Usage
	if err != nil {
		return nil, meta, fmt.Errorf("failed to get scanner response: %w", err)
	}

	var parsed struct {
		Items []OcrItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, meta, apperr.Parse("malformed scanner output: %v", err)
	}

	var readable []OcrItem
	for _, item := range parsed.Items {
		if !item.Readable {
			continue
		}
		if item.Name == "" {
			return nil, meta, apperr.Parse("scanner item missing name")
		}
		readable = append(readable, item)
	}

	if len(readable) == 0 {
		return nil, meta, fmt.Errorf("%w: no readable items on receipt", apperr.ErrUnreadableInput)
	}
	return readable, meta, nil
}
