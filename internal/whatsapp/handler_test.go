package whatsapp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	err   error
	calls []struct{ from, text string }
}

func (f *fakeService) HandleIncoming(_ context.Context, from, text string) error {
	f.calls = append(f.calls, struct{ from, text string }{from, text})
	return f.err
}

const secret = "test-secret"

func verifyRequest(params map[string]string) *httptest.ResponseRecorder {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodGet, "/webhook?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, secret).HandleVerify(rec, req)
	return rec
}

func TestHandleVerify_Success(t *testing.T) {
	rec := verifyRequest(map[string]string{
		"hub.mode":         "subscribe",
		"hub.verify_token": secret,
		"hub.challenge":    "1158201444",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1158201444", rec.Body.String(), "challenge must be echoed verbatim")
}

func TestHandleVerify_WrongToken(t *testing.T) {
	rec := verifyRequest(map[string]string{
		"hub.mode":         "subscribe",
		"hub.verify_token": "wrong",
		"hub.challenge":    "42",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleVerify_WrongMode(t *testing.T) {
	rec := verifyRequest(map[string]string{
		"hub.mode":         "unsubscribe",
		"hub.verify_token": secret,
		"hub.challenge":    "42",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleVerify_MissingParams(t *testing.T) {
	cases := []map[string]string{
		{"hub.verify_token": secret, "hub.challenge": "42"}, // no mode
		{"hub.mode": "subscribe", "hub.challenge": "42"},    // no token
		{},
	}
	for _, params := range cases {
		rec := verifyRequest(params)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "params: %v", params)
	}
}

const deliveryBody = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "1",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "messages": [{
          "from": "15551234567",
          "id": "wamid.X",
          "type": "text",
          "text": {"body": "2 kg sugar"}
        }]
      }
    }]
  }]
}`

func postWebhook(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

func TestHandleWebhook_Delivery(t *testing.T) {
	svc := &fakeService{}
	rec := postWebhook(NewHandler(svc, secret), deliveryBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "15551234567", svc.calls[0].from)
	assert.Equal(t, "2 kg sugar", svc.calls[0].text)
}

func TestHandleWebhook_AckAndIgnore(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"no changes", `{"entry":[{"id":"1","changes":[]}]}`},
		{"no messages", `{"entry":[{"changes":[{"value":{}}]}]}`},
		{"status update", `{"entry":[{"changes":[{"value":{"statuses":[{"id":"x"}]}}]}]}`},
		{"non-text message", `{"entry":[{"changes":[{"value":{"messages":[{"from":"1","type":"image"}]}}]}]}`},
		{"text type without body", `{"entry":[{"changes":[{"value":{"messages":[{"from":"1","type":"text"}]}}]}]}`},
		{"malformed json", `{"entry": [`},
	}

	for _, tc := range cases {
		svc := &fakeService{}
		rec := postWebhook(NewHandler(svc, secret), tc.body)
		assert.Equal(t, http.StatusOK, rec.Code, tc.name)
		assert.Empty(t, svc.calls, tc.name)
	}
}

func TestHandleWebhook_PipelineFault(t *testing.T) {
	svc := &fakeService{err: errors.New("render failed")}
	rec := postWebhook(NewHandler(svc, secret), deliveryBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
