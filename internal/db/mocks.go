package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const mockColumns = `id, account_id, email, scheduled_for, mode, job_role,
	industry, experience, resume_text, job_description, notified_stage, created_at`

func scanMock(row pgx.Row) (*ScheduledMock, error) {
	var m ScheduledMock
	err := row.Scan(&m.ID, &m.AccountID, &m.Email, &m.ScheduledFor, &m.Mode,
		&m.JobRole, &m.Industry, &m.Experience, &m.ResumeText, &m.JobDescription,
		&m.NotifiedStage, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMock persists a scheduled mock interview and returns its ID.
func (db *DB) CreateMock(ctx context.Context, m *ScheduledMock) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO scheduled_mocks
		   (account_id, email, scheduled_for, mode, job_role, industry, experience,
		    resume_text, job_description, notified_stage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		m.AccountID, m.Email, m.ScheduledFor, m.Mode, m.JobRole, m.Industry,
		m.Experience, m.ResumeText, m.JobDescription, StageUnset,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create scheduled mock: %w", err)
	}
	return id, nil
}

// ListMocks retrieves an account's scheduled mocks, soonest first.
func (db *DB) ListMocks(ctx context.Context, accountID string) ([]ScheduledMock, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+mockColumns+` FROM scheduled_mocks
		 WHERE account_id = $1 ORDER BY scheduled_for ASC`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled mocks: %w", err)
	}
	defer rows.Close()

	var mocks []ScheduledMock
	for rows.Next() {
		m, err := scanMock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled mock: %w", err)
		}
		mocks = append(mocks, *m)
	}
	return mocks, nil
}

// DeleteMock cancels a scheduled mock.
func (db *DB) DeleteMock(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM scheduled_mocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scheduled mock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scheduled mock not found: %s", id)
	}
	return nil
}

// ListUpcomingMocks retrieves mocks scheduled between now and until that have
// not yet received their final reminder. Used by the reminder sweep.
func (db *DB) ListUpcomingMocks(ctx context.Context, now, until time.Time) ([]ScheduledMock, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+mockColumns+` FROM scheduled_mocks
		 WHERE scheduled_for > $1 AND scheduled_for <= $2 AND notified_stage <> $3
		 ORDER BY scheduled_for ASC`,
		now, until, Stage5M)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming mocks: %w", err)
	}
	defer rows.Close()

	var mocks []ScheduledMock
	for rows.Next() {
		m, err := scanMock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled mock: %w", err)
		}
		mocks = append(mocks, *m)
	}
	return mocks, nil
}

// AdvanceMockStage records that the reminder for the given stage has been sent.
func (db *DB) AdvanceMockStage(ctx context.Context, id uuid.UUID, stage NotifyStage) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE scheduled_mocks SET notified_stage = $1 WHERE id = $2`,
		stage, id)
	if err != nil {
		return fmt.Errorf("failed to advance reminder stage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scheduled mock not found: %s", id)
	}
	return nil
}
