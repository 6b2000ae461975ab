package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, mode, job_role, industry, experience, resume_text,
	job_description, questions, answers, feedback, ideal_answers,
	overall_feedback, score, status, account_id, email, created_at, updated_at`

func scanSession(row pgx.Row) (*InterviewSession, error) {
	var s InterviewSession
	err := row.Scan(
		&s.ID, &s.Mode, &s.JobRole, &s.Industry, &s.Experience, &s.ResumeText,
		&s.JobDescription, &s.Questions, &s.Answers, &s.Feedback, &s.IdealAnswers,
		&s.OverallFeedback, &s.Score, &s.Status, &s.AccountID, &s.Email,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession persists a new interview session and returns its ID.
func (db *DB) CreateSession(ctx context.Context, s *InterviewSession) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_sessions
		   (mode, job_role, industry, experience, resume_text, job_description, status, account_id, email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		s.Mode, s.JobRole, s.Industry, s.Experience, s.ResumeText, s.JobDescription,
		s.Status, s.AccountID, s.Email,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// GetSession retrieves a session by ID. Returns nil, nil when not found.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*InterviewSession, error) {
	s, err := scanSession(db.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// ListSessions retrieves sessions newest first. An empty accountID lists all
// sessions (admin/export use).
func (db *DB) ListSessions(ctx context.Context, accountID string) ([]InterviewSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM interview_sessions`
	args := []any{}
	if accountID != "" {
		query += ` WHERE account_id = $1`
		args = append(args, accountID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []InterviewSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

// UpdateSession overwrites the mutable fields of a session.
func (db *DB) UpdateSession(ctx context.Context, s *InterviewSession) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE interview_sessions SET
		   mode = $1, job_role = $2, industry = $3, experience = $4,
		   resume_text = $5, job_description = $6, questions = $7, answers = $8,
		   feedback = $9, ideal_answers = $10, overall_feedback = $11,
		   score = $12, status = $13, email = $14, updated_at = NOW()
		 WHERE id = $15`,
		s.Mode, s.JobRole, s.Industry, s.Experience,
		s.ResumeText, s.JobDescription, s.Questions, s.Answers,
		s.Feedback, s.IdealAnswers, s.OverallFeedback,
		s.Score, s.Status, s.Email, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", s.ID)
	}
	return nil
}

// DeleteSession removes a session by ID.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM interview_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

// CountSessionsCreatedBetween counts sessions owned by an account with a
// creation timestamp in [from, to). Used by the monthly quota policy.
func (db *DB) CountSessionsCreatedBetween(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interview_sessions
		 WHERE account_id = $1 AND created_at >= $2 AND created_at < $3`,
		accountID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
