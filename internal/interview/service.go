package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/scoring"
)

// SessionStore is the session persistence surface. *db.DB satisfies it.
type SessionStore interface {
	CreateSession(ctx context.Context, s *db.InterviewSession) (uuid.UUID, error)
	GetSession(ctx context.Context, id uuid.UUID) (*db.InterviewSession, error)
	ListSessions(ctx context.Context, accountID string) ([]db.InterviewSession, error)
	UpdateSession(ctx context.Context, s *db.InterviewSession) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// Store aggregates everything the service persists through.
type Store interface {
	SessionStore
	AccountStore
	SessionCounter
}

// QuestionGenerator produces interview questions for a role description.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, role, industry, experience, jobDescription, resumeText string) ([]string, error)
}

// Scorer grades a finished answer set.
type Scorer interface {
	Score(ctx context.Context, questions, answers []string, mode db.Mode) (scoring.Result, error)
}

// Service owns the interview session lifecycle.
type Service struct {
	store     Store
	quota     *QuotaPolicy
	generator QuestionGenerator
	scorer    Scorer
	log       *zap.Logger
	now       func() time.Time
}

func NewService(store Store, quota *QuotaPolicy, generator QuestionGenerator, scorer Scorer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     store,
		quota:     quota,
		generator: generator,
		scorer:    scorer,
		log:       log,
		now:       time.Now,
	}
}

// CreateParams carries the caller-supplied fields for a new session.
type CreateParams struct {
	Mode           db.Mode
	JobRole        string
	Industry       string
	Experience     string
	ResumeText     string
	JobDescription string
	AccountID      string
	Email          string
}

// Create registers a new session in the created status after the quota check
// passes. Questions are not generated here; that happens on Start.
func (s *Service) Create(ctx context.Context, p CreateParams) (*db.InterviewSession, error) {
	if p.JobRole == "" {
		return nil, &ErrValidation{Field: "jobRole", Message: "a job role is required"}
	}
	if p.Experience == "" {
		return nil, &ErrValidation{Field: "experience", Message: "an experience level is required"}
	}
	mode := p.Mode
	if mode == "" {
		mode = db.ModeText
	}
	if !mode.Valid() {
		return nil, &ErrValidation{Field: "mode", Message: "mode must be text, audio or video"}
	}
	if p.AccountID == "" {
		return nil, &ErrMissingIdentity{}
	}

	if p.Email != "" {
		if _, err := s.store.UpsertAccount(ctx, p.AccountID, p.Email); err != nil {
			return nil, &ErrStorage{Op: "account upsert", Cause: err}
		}
	}

	if err := s.quota.CanCreate(ctx, p.AccountID, s.now()); err != nil {
		return nil, err
	}

	session := &db.InterviewSession{
		Mode:           mode,
		JobRole:        p.JobRole,
		Industry:       p.Industry,
		Experience:     p.Experience,
		ResumeText:     p.ResumeText,
		JobDescription: p.JobDescription,
		Status:         db.StatusCreated,
		AccountID:      p.AccountID,
		Email:          p.Email,
	}
	id, err := s.store.CreateSession(ctx, session)
	if err != nil {
		return nil, &ErrStorage{Op: "session create", Cause: err}
	}
	created, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, &ErrStorage{Op: "session read-back", Cause: err}
	}
	s.log.Info("interview created",
		zap.String("session_id", id.String()),
		zap.String("account_id", p.AccountID),
		zap.String("mode", string(mode)))
	return created, nil
}

// Start generates questions for the session and moves it to in_progress.
// Generation failures leave the session untouched so the call can be retried.
// Restarting an in_progress session regenerates its questions; a completed
// session cannot be restarted.
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*db.InterviewSession, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == db.StatusCompleted {
		return nil, &ErrValidation{Field: "status", Message: "a completed interview cannot be restarted"}
	}

	questions, err := s.generator.GenerateQuestions(ctx, session.JobRole, session.Industry, session.Experience, session.JobDescription, session.ResumeText)
	if err != nil {
		return nil, &ErrGenerationFailed{Cause: err}
	}

	session.Questions = questions
	session.Answers = nil
	session.Feedback = nil
	session.IdealAnswers = nil
	session.Status = db.StatusInProgress
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, &ErrStorage{Op: "session start", Cause: err}
	}
	s.log.Info("interview started",
		zap.String("session_id", id.String()),
		zap.Int("questions", len(questions)))
	return session, nil
}

// Submit grades the answers against the session's questions and completes the
// session. Answers beyond the question count are dropped; missing trailing
// answers are treated as unanswered.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, answers []string) (*db.InterviewSession, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(session.Questions) == 0 {
		return nil, &ErrMissingQuestions{}
	}

	aligned := make([]string, len(session.Questions))
	copy(aligned, answers)

	result, err := s.scorer.Score(ctx, session.Questions, aligned, session.Mode)
	if err != nil {
		return nil, &ErrStorage{Op: "answer scoring", Cause: err}
	}

	session.Answers = aligned
	session.Feedback = result.Feedback
	session.IdealAnswers = result.IdealAnswers
	session.OverallFeedback = result.OverallFeedback
	session.Score = result.Score
	session.Status = db.StatusCompleted
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, &ErrStorage{Op: "session submit", Cause: err}
	}
	fields := []zap.Field{zap.String("session_id", id.String())}
	if result.Score != nil {
		fields = append(fields, zap.Int("score", *result.Score))
	}
	s.log.Info("interview completed", fields...)
	return session, nil
}

// Get returns a single session by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*db.InterviewSession, error) {
	return s.getSession(ctx, id)
}

// List returns sessions for one account, or every session when accountID is
// empty, newest first.
func (s *Service) List(ctx context.Context, accountID string) ([]db.InterviewSession, error) {
	sessions, err := s.store.ListSessions(ctx, accountID)
	if err != nil {
		return nil, &ErrStorage{Op: "session list", Cause: err}
	}
	return sessions, nil
}

// Overwrite replaces a session's stored fields wholesale, bypassing the
// lifecycle rules. Administrative use only.
func (s *Service) Overwrite(ctx context.Context, session *db.InterviewSession) (*db.InterviewSession, error) {
	if _, err := s.getSession(ctx, session.ID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, &ErrStorage{Op: "session overwrite", Cause: err}
	}
	return s.getSession(ctx, session.ID)
}

// Delete removes a session permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getSession(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return &ErrStorage{Op: "session delete", Cause: err}
	}
	s.log.Info("interview deleted", zap.String("session_id", id.String()))
	return nil
}

func (s *Service) getSession(ctx context.Context, id uuid.UUID) (*db.InterviewSession, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, &ErrStorage{Op: "session lookup", Cause: err}
	}
	if session == nil {
		return nil, &ErrNotFound{Resource: "interview", ID: id.String()}
	}
	return session, nil
}
