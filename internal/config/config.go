package config

import (
	"fmt"
	"os"
)

// Config carries everything the process needs, resolved once at startup.
// Components receive it (or the fields they need) by injection; nothing
// reads the environment after Load returns.
type Config struct {
	Port string

	// WhatsApp Cloud API
	WhatsAppToken   string // bearer token
	WhatsAppPhoneID string // sender phone-number-id
	VerifyToken     string // webhook verification shared secret

	// OpenAI
	OpenAIKey   string
	OpenAIModel string

	// Catalog source. DatabaseURL wins over CatalogPath; with neither set
	// the built-in catalog is used.
	DatabaseURL string
	CatalogPath string

	// Invoice artifacts
	InvoiceDir    string
	PublicBaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		WhatsAppToken:   os.Getenv("WHATSAPP_TOKEN"),
		WhatsAppPhoneID: os.Getenv("WHATSAPP_PHONE_ID"),
		VerifyToken:     os.Getenv("WEBHOOK_VERIFY_TOKEN"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		InvoiceDir:      getenv("INVOICE_DIR", "invoices"),
		PublicBaseURL:   getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	required := []struct {
		name  string
		value string
	}{
		{"WHATSAPP_TOKEN", cfg.WhatsAppToken},
		{"WHATSAPP_PHONE_ID", cfg.WhatsAppPhoneID},
		{"WEBHOOK_VERIFY_TOKEN", cfg.VerifyToken},
		{"OPENAI_API_KEY", cfg.OpenAIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("config: %s is not set", r.name)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
