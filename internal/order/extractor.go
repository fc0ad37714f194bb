package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/orderbridge/wa-invoice-bridge/internal/ai"
)

type TextExtractor struct {
	ai ai.AI
}

func NewTextExtractor(aiClient ai.AI) *TextExtractor {
	return &TextExtractor{ai: aiClient}
}

// TextToOrder asks the model for the fixed {product, quantity, unit} shape
// and normalizes every possible failure — transport error, non-JSON reply,
// missing product — to ErrExtractionFailed. The quantity is kept as the raw
// token: whether it is a usable number is the pricer's call, not ours.
func (e *TextExtractor) TextToOrder(ctx context.Context, text string) (CandidateOrder, error) {
	if strings.TrimSpace(text) == "" {
		return CandidateOrder{}, ErrExtractionFailed
	}

	raw, err := e.ai.GetReply(ctx, ExtractOrderPrompt, text)
	if err != nil {
		log.Println("[extractor] AI error:", err)
		return CandidateOrder{}, ErrExtractionFailed
	}

	var resp struct {
		Product  string `json:"product"`
		Quantity any    `json:"quantity"`
		Unit     string `json:"unit"`
	}

	dec := json.NewDecoder(strings.NewReader(stripFences(raw)))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		log.Printf("[extractor] JSON error: %v raw=%q", err, short(raw))
		return CandidateOrder{}, ErrExtractionFailed
	}

	product := strings.TrimSpace(resp.Product)
	if product == "" {
		return CandidateOrder{}, ErrExtractionFailed
	}

	return CandidateOrder{
		Product:  product,
		Quantity: quantityToken(resp.Quantity),
		Unit:     strings.TrimSpace(resp.Unit),
	}, nil
}

// quantityToken flattens whatever JSON value the model put in "quantity"
// into a string. UseNumber keeps numbers verbatim, so "1.5" survives
// without float noise.
func quantityToken(v any) string {
	switch q := v.(type) {
	case nil:
		return ""
	case json.Number:
		return q.String()
	case string:
		return strings.TrimSpace(q)
	default:
		return fmt.Sprint(q)
	}
}

// stripFences removes a markdown code fence if the model wrapped its JSON
// in one despite the format guard.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func short(s string) string {
	if len(s) > 180 {
		return s[:180] + "..."
	}
	return s
}
