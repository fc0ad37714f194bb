package order

import (
	"github.com/shopspring/decimal"
)

// Pricer validates a candidate against the catalog and computes the total.
// Every call terminates in exactly one of three outcomes: ErrProductNotFound,
// ErrInvalidQuantity, or a PricedOrder. Failures are final for the message —
// there is nothing to retry, the user has to resend.
type Pricer struct {
	catalog *Catalog
}

func NewPricer(catalog *Catalog) *Pricer {
	return &Pricer{catalog: catalog}
}

func (p *Pricer) Price(cand CandidateOrder) (PricedOrder, error) {
	unitPrice, ok := p.catalog.Lookup(cand.Product)
	if !ok {
		return PricedOrder{}, ErrProductNotFound
	}

	qty, err := decimal.NewFromString(cand.Quantity)
	if err != nil {
		return PricedOrder{}, ErrInvalidQuantity
	}
	if !qty.IsPositive() {
		return PricedOrder{}, ErrInvalidQuantity
	}

	// Total stays exactly as computed; decimal.Mul is lossless, so "1.5 kg"
	// at 40 is 60 and not 59.999...
	return PricedOrder{
		Product:   cand.Product,
		Quantity:  qty,
		Unit:      cand.Unit,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(qty),
	}, nil
}
