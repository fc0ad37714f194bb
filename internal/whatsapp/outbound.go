package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://graph.facebook.com/v19.0"

// Outbound is the Cloud API send client. It implements order.Notifier.
type Outbound struct {
	baseURL string
	phoneID string
	token   string
	client  *http.Client
}

func NewOutbound(token, phoneID string) *Outbound {
	return &Outbound{
		baseURL: defaultBaseURL,
		phoneID: phoneID,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (o *Outbound) SendText(ctx context.Context, to string, body string) error {
	return o.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"body": body,
		},
	})
}

func (o *Outbound) SendDocument(ctx context.Context, to string, link string, filename string, caption string) error {
	return o.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "document",
		"document": map[string]any{
			"link":     link,
			"filename": filename,
			"caption":  caption,
		},
	})
}

func (o *Outbound) send(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		o.baseURL+"/"+o.phoneID+"/messages",
		bytes.NewReader(b),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.token)

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return errors.New(
			"whatsapp api error: " +
				resp.Status +
				" body=" + string(respBody),
		)
	}

	return nil
}
