package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/db"
)

// ---------------------------------------------------------------------
// Admin Handlers
// ---------------------------------------------------------------------

// requireAdmin gates a handler behind the configured admin credential. The
// bearer secret is bcrypt-checked against the stored hash.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.admin == nil || !s.admin.Enabled() {
			s.errorResponse(w, http.StatusForbidden, "Admin access is not configured")
			return
		}
		secret := bearerToken(r)
		if secret == "" || !s.admin.Verify(secret) {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid admin credential")
			return
		}
		next(w, r)
	}
}

// handleAdminEditInterview overwrites a session's stored fields wholesale,
// bypassing the lifecycle rules.
func (s *Server) handleAdminEditInterview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	var session db.InterviewSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	session.ID = id

	updated, err := s.interviews.Overwrite(r.Context(), &session)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.log.Info("admin edited interview", zap.String("session_id", id.String()))
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleAdminDeleteInterview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	if err := s.interviews.Delete(r.Context(), id); err != nil {
		s.serviceError(w, err)
		return
	}

	s.log.Info("admin deleted interview", zap.String("session_id", id.String()))
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.db.ListAccounts(r.Context())
	if err != nil {
		s.log.Error("failed to list accounts", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if accounts == nil {
		accounts = []db.Account{}
	}
	s.jsonResponse(w, http.StatusOK, accounts)
}

type UpdatePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=Free Premium"`
}

// handleAdminUpdatePlan changes an account's plan. Only the plan field is
// writable through this endpoint.
func (s *Server) handleAdminUpdatePlan(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")

	var req UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "plan must be Free or Premium")
		return
	}

	account, err := s.db.UpdatePlan(r.Context(), accountID, db.Plan(req.Plan))
	if err != nil {
		s.log.Error("failed to update plan", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if account == nil {
		s.errorResponse(w, http.StatusNotFound, "Account not found")
		return
	}

	s.log.Info("admin changed plan",
		zap.String("account_id", accountID),
		zap.String("plan", req.Plan))
	s.jsonResponse(w, http.StatusOK, account)
}

// handleAdminDeleteUser erases an account along with its sessions and
// scheduled mocks.
func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")

	if err := s.db.DeleteAccount(r.Context(), accountID); err != nil {
		if err.Error() == "account not found: "+accountID {
			s.errorResponse(w, http.StatusNotFound, "Account not found")
			return
		}
		s.log.Error("failed to delete account", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info("admin erased account", zap.String("account_id", accountID))
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
