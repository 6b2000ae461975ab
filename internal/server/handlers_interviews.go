package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/export"
	"github.com/jonathan/interview-prep/internal/interview"
)

// ---------------------------------------------------------------------
// Interview Lifecycle Handlers
// ---------------------------------------------------------------------

type CreateInterviewRequest struct {
	Mode           string `json:"mode" validate:"omitempty,oneof=text audio video"`
	JobRole        string `json:"jobRole" validate:"required"`
	Industry       string `json:"industry"`
	Experience     string `json:"experience" validate:"required"`
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	AccountID      string `json:"accountId"`
	Email          string `json:"email"`
}

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "jobRole and experience are required")
		return
	}

	accountID, email := accountFromRequest(r, req.AccountID, req.Email)
	session, err := s.interviews.Create(r.Context(), interview.CreateParams{
		Mode:           db.Mode(req.Mode),
		JobRole:        req.JobRole,
		Industry:       req.Industry,
		Experience:     req.Experience,
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		AccountID:      accountID,
		Email:          email,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, session)
}

type StartInterviewRequest struct {
	InterviewID string `json:"interviewId" validate:"required"`
}

func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	var req StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := uuid.Parse(req.InterviewID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	session, err := s.interviews.Start(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"interviewId": session.ID.String(),
		"questions":   session.Questions,
		"status":      session.Status,
	})
}

type SubmitInterviewRequest struct {
	InterviewID string   `json:"interviewId" validate:"required"`
	Answers     []string `json:"answers"`
}

func (s *Server) handleSubmitInterview(w http.ResponseWriter, r *http.Request) {
	var req SubmitInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := uuid.Parse(req.InterviewID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	session, err := s.interviews.Submit(r.Context(), id, req.Answers)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"interviewId":     session.ID.String(),
		"feedback":        session.Feedback,
		"idealAnswers":    session.IdealAnswers,
		"overallFeedback": session.OverallFeedback,
		"score":           session.Score,
		"status":          session.Status,
	})
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	session, err := s.interviews.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	accountID, _ := accountFromRequest(r, r.URL.Query().Get("accountId"), "")

	sessions, err := s.interviews.List(r.Context(), accountID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if sessions == nil {
		sessions = []db.InterviewSession{}
	}

	s.jsonResponse(w, http.StatusOK, sessions)
}

// handleExportLogs streams every interview session as a CSV attachment.
func (s *Server) handleExportLogs(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.interviews.List(r.Context(), "")
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if len(sessions) == 0 {
		s.errorResponse(w, http.StatusNotFound, "No interview logs to export")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sessions); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export logs")
		return
	}

	filename := fmt.Sprintf("interview_logs_%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error("failed to write csv response", zap.Error(err))
	}
}
