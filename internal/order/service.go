package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// User-facing replies. One per terminal outcome, never retried.
const (
	replyCouldNotUnderstand = "Sorry, I could not understand the order. Please tell me the product and the quantity, e.g. \"2 kg sugar\"."
	replyProductNotFound    = "Sorry, we do not have that product. Please check the name and try again."
	replyInvalidQuantity    = "Please send a valid quantity greater than zero."
)

const (
	extractTimeout = 30 * time.Second
	sendTimeout    = 10 * time.Second
)

type service struct {
	extractor Extractor
	pricer    *Pricer
	renderer  Renderer
	notifier  Notifier
}

func NewService(extractor Extractor, pricer *Pricer, renderer Renderer, notifier Notifier) Service {
	return &service{
		extractor: extractor,
		pricer:    pricer,
		renderer:  renderer,
		notifier:  notifier,
	}
}

// HandleIncoming runs the whole pipeline for one inbound message:
// extract → price → render → notify. Business failures (the user sent
// something we cannot price) are answered in chat and swallowed — the
// webhook still acks. Only render/send faults bubble up to the boundary.
func (s *service) HandleIncoming(ctx context.Context, from string, text string) error {
	log.Println("========== NEW MESSAGE ==========")
	log.Printf("[svc] from=%s text=%q", from, text)

	ectx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	cand, err := s.extractor.TextToOrder(ectx, text)
	if err != nil {
		log.Printf("[svc] extraction failed: %v", err)
		return s.reply(ctx, from, replyCouldNotUnderstand)
	}

	log.Printf("[svc] candidate: product=%q quantity=%q unit=%q",
		cand.Product, cand.Quantity, cand.Unit,
	)

	priced, err := s.pricer.Price(cand)
	switch {
	case errors.Is(err, ErrProductNotFound):
		log.Printf("[svc] product not found: %q", cand.Product)
		return s.reply(ctx, from, replyProductNotFound)
	case errors.Is(err, ErrInvalidQuantity):
		log.Printf("[svc] invalid quantity: %q", cand.Quantity)
		return s.reply(ctx, from, replyInvalidQuantity)
	case err != nil:
		return fmt.Errorf("price: %w", err)
	}

	log.Printf("[svc] priced: %s %s %s @ %s = %s",
		priced.Quantity, priced.Unit, priced.Product, priced.UnitPrice, priced.Total,
	)

	art, err := s.renderer.Render(priced)
	if err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}

	confirmation := fmt.Sprintf(
		"Order confirmed: %s %s %s.\nUnit price: %s\nTotal: %s\nYour invoice: %s",
		priced.Quantity, priced.Unit, priced.Product,
		priced.UnitPrice, priced.Total, art.URL,
	)

	if err := s.reply(ctx, from, confirmation); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}

	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := s.notifier.SendDocument(sctx, from, art.URL, art.Name, "Invoice"); err != nil {
		return fmt.Errorf("send invoice: %w", err)
	}

	return nil
}

func (s *service) reply(ctx context.Context, to string, body string) error {
	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return s.notifier.SendText(sctx, to, body)
}
