package whatsapp

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/orderbridge/wa-invoice-bridge/internal/order"
)

type Handler struct {
	svc         order.Service
	verifyToken string
}

func NewHandler(svc order.Service, verifyToken string) *Handler {
	return &Handler{svc: svc, verifyToken: verifyToken}
}

// HandleVerify — the Cloud API subscription handshake. Echo the challenge
// verbatim on a correct secret, 403 on a wrong one, 400 when mode or token
// is missing entirely.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "" || token == "" {
		http.Error(w, "missing hub.mode or hub.verify_token", http.StatusBadRequest)
		return
	}

	if mode != "subscribe" || token != h.verifyToken {
		http.Error(w, "verification failed", http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(challenge))
}

// HandleWebhook — inbound message delivery. The platform retries anything
// that is not a 200, so deliveries we cannot use (wrong shape, non-text
// messages) are acked and dropped; 500 is reserved for pipeline faults.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("[webhook] undecodable body, acked:", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil || msg.From == "" {
					continue
				}
				if err := h.svc.HandleIncoming(r.Context(), msg.From, msg.Text.Body); err != nil {
					log.Printf("[webhook] pipeline error: %v", err)
					http.Error(w, "processing error", http.StatusInternalServerError)
					return
				}
			}
		}
	}

	w.WriteHeader(http.StatusOK)
}
