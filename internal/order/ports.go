package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// CandidateOrder is what extraction produced from free text. Nothing about
// it is trusted yet: Product may not exist in the catalog and Quantity is
// the raw token from the model, validated by the pricer, not here.
type CandidateOrder struct {
	Product  string
	Quantity string
	Unit     string
}

// PricedOrder exists only after the candidate passed catalog lookup and
// quantity validation. Total is UnitPrice * Quantity, stored as computed.
type PricedOrder struct {
	Product   string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Terminal outcomes of the pipeline. Each maps to its own user-facing
// reply and none of them is retried.
var (
	ErrExtractionFailed = errors.New("order: extraction failed")
	ErrProductNotFound  = errors.New("order: product not found")
	ErrInvalidQuantity  = errors.New("order: invalid quantity")
)

// Extractor turns free text into a candidate order or ErrExtractionFailed.
// It never lets a fault from the model escape as anything else.
type Extractor interface {
	TextToOrder(ctx context.Context, text string) (CandidateOrder, error)
}

// Artifact is a rendered invoice the notifier can link to.
type Artifact struct {
	Name string
	Path string
	URL  string
}

type Renderer interface {
	Render(po PricedOrder) (Artifact, error)
}

type Notifier interface {
	SendText(ctx context.Context, to string, body string) error
	SendDocument(ctx context.Context, to string, link string, filename string, caption string) error
}

// Service — orchestration, one invocation per inbound message
type Service interface {
	HandleIncoming(ctx context.Context, from string, text string) error
}
