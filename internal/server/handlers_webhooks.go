package server

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/schemas"
)

// ---------------------------------------------------------------------
// Webhook Handlers
// ---------------------------------------------------------------------

// maxWebhookBody caps webhook payload size at 1 MiB.
const maxWebhookBody = 1 << 20

type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// handleClerkWebhook processes auth-provider events. user.created seeds an
// account record; user.deleted erases it.
func (s *Server) handleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read payload")
		return
	}
	if err := schemas.ValidatePayload(schemas.ClerkEvent, payload); err != nil {
		s.log.Warn("rejected clerk webhook", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Invalid webhook payload")
		return
	}

	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
		email := ""
		if len(event.Data.EmailAddresses) > 0 {
			email = event.Data.EmailAddresses[0].EmailAddress
		}
		if _, err := s.db.UpsertAccount(r.Context(), event.Data.ID, email); err != nil {
			s.log.Error("failed to upsert account from webhook", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		s.log.Info("account synced from auth provider",
			zap.String("account_id", event.Data.ID),
			zap.String("event", event.Type))
	case "user.deleted":
		if err := s.db.DeleteAccount(r.Context(), event.Data.ID); err != nil {
			// the account may never have interacted with us
			s.log.Warn("account erasure from webhook skipped", zap.Error(err))
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "received"})
}

type billingEvent struct {
	Type string `json:"type"`
	Data struct {
		AccountID      string `json:"account_id"`
		CustomerID     string `json:"customer_id"`
		SubscriptionID string `json:"subscription_id"`
	} `json:"data"`
}

// handleBillingWebhook processes subscription events. A completed checkout or
// renewal grants Premium; a cancellation drops the account back to Free.
func (s *Server) handleBillingWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read payload")
		return
	}
	if err := schemas.ValidatePayload(schemas.BillingEvent, payload); err != nil {
		s.log.Warn("rejected billing webhook", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Invalid webhook payload")
		return
	}

	var event billingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	var plan db.Plan
	switch event.Type {
	case "checkout.completed", "subscription.renewed":
		plan = db.PlanPremium
	case "subscription.canceled":
		plan = db.PlanFree
	}

	// make sure the account exists before touching its plan
	if _, err := s.db.UpsertAccount(r.Context(), event.Data.AccountID, ""); err != nil {
		s.log.Error("failed to upsert account from billing webhook", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if event.Data.CustomerID != "" || event.Data.SubscriptionID != "" {
		if err := s.db.SetBillingRefs(r.Context(), event.Data.AccountID, event.Data.CustomerID, event.Data.SubscriptionID); err != nil {
			s.log.Error("failed to store billing refs", zap.Error(err))
		}
	}
	if _, err := s.db.UpdatePlan(r.Context(), event.Data.AccountID, plan); err != nil {
		s.log.Error("failed to update plan from billing webhook", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info("plan updated from billing webhook",
		zap.String("account_id", event.Data.AccountID),
		zap.String("event", event.Type),
		zap.String("plan", string(plan)))
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "received"})
}
