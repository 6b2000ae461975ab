package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Webhook happy paths hit Postgres and live in the integration suite; these
// cover the schema gate, which rejects before any storage access.

func postRaw(srv *Server, handler http.HandlerFunc, path, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleClerkWebhook_RejectsInvalidPayloads(t *testing.T) {
	srv := newTestServer(newMemStore(), &stubGenerator{}, &stubScorer{})

	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"type":`},
		{"missing data", `{"type": "user.created"}`},
		{"missing user id", `{"type": "user.created", "data": {}}`},
		{"unknown event type", `{"type": "org.created", "data": {"id": "user_1"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postRaw(srv, srv.handleClerkWebhook, "/webhooks/clerk", tc.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleBillingWebhook_RejectsInvalidPayloads(t *testing.T) {
	srv := newTestServer(newMemStore(), &stubGenerator{}, &stubScorer{})

	tests := []struct {
		name    string
		payload string
	}{
		{"missing account id", `{"type": "checkout.completed", "data": {"customer_id": "cus_1"}}`},
		{"unknown event type", `{"type": "invoice.paid", "data": {"account_id": "user_1"}}`},
		{"empty body", ``},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postRaw(srv, srv.handleBillingWebhook, "/webhooks/billing", tc.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
