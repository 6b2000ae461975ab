package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/db"
)

// ---------------------------------------------------------------------
// Scheduled Mock Handlers
// ---------------------------------------------------------------------

type ScheduleMockRequest struct {
	ScheduledFor   time.Time `json:"scheduledFor" validate:"required"`
	Mode           string    `json:"mode" validate:"omitempty,oneof=text audio video"`
	JobRole        string    `json:"jobRole"`
	Industry       string    `json:"industry"`
	Experience     string    `json:"experience"`
	ResumeText     string    `json:"resumeText"`
	JobDescription string    `json:"jobDescription"`
	AccountID      string    `json:"accountId"`
	Email          string    `json:"email" validate:"required,email"`
}

func (s *Server) handleScheduleMock(w http.ResponseWriter, r *http.Request) {
	var req ScheduleMockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "scheduledFor and a valid email are required")
		return
	}
	if !req.ScheduledFor.After(time.Now()) {
		s.errorResponse(w, http.StatusBadRequest, "scheduledFor must be in the future")
		return
	}

	accountID, email := accountFromRequest(r, req.AccountID, req.Email)
	if accountID == "" {
		s.errorResponse(w, http.StatusBadRequest, "an account id is required")
		return
	}

	mock := &db.ScheduledMock{
		AccountID:      accountID,
		Email:          email,
		ScheduledFor:   req.ScheduledFor,
		Mode:           db.Mode(req.Mode),
		JobRole:        req.JobRole,
		Industry:       req.Industry,
		Experience:     req.Experience,
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
	}
	id, err := s.db.CreateMock(r.Context(), mock)
	if err != nil {
		s.log.Error("failed to schedule mock", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info("mock scheduled",
		zap.String("mock_id", id.String()),
		zap.String("account_id", accountID),
		zap.Time("scheduled_for", req.ScheduledFor))
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleListMocks(w http.ResponseWriter, r *http.Request) {
	accountID, _ := accountFromRequest(r, r.URL.Query().Get("accountId"), "")
	if accountID == "" {
		s.errorResponse(w, http.StatusBadRequest, "an account id is required")
		return
	}

	mocks, err := s.db.ListMocks(r.Context(), accountID)
	if err != nil {
		s.log.Error("failed to list mocks", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if mocks == nil {
		mocks = []db.ScheduledMock{}
	}

	s.jsonResponse(w, http.StatusOK, mocks)
}

func (s *Server) handleCancelMock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid mock ID")
		return
	}

	if err := s.db.DeleteMock(r.Context(), id); err != nil {
		if err.Error() == "scheduled mock not found: "+id.String() {
			s.errorResponse(w, http.StatusNotFound, "Scheduled mock not found")
			return
		}
		s.log.Error("failed to cancel mock", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "canceled"})
}
