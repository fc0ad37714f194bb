package whatsapp

// Inbound Cloud API webhook envelope. Only the path down to text messages
// is modeled; anything else (statuses, media, reactions) is acked and
// ignored by the handler.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []InboundMessage `json:"messages"`
}

type InboundMessage struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text *Text  `json:"text"`
}

type Text struct {
	Body string `json:"body"`
}
