package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, email, plan, COALESCE(billing_customer_id, ''),
	COALESCE(billing_subscription_id, ''), created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Email, &a.Plan, &a.BillingCustomerID,
		&a.BillingSubscriptionID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccount retrieves an account by external id. Returns nil, nil when not found.
func (db *DB) GetAccount(ctx context.Context, id string) (*Account, error) {
	a, err := scanAccount(db.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

// UpsertAccount creates an account on first sight (Free plan) or refreshes its
// email. The plan and updated_at are left alone on conflict: updated_at moves
// only on plan changes, which the quota policy reads.
func (db *DB) UpsertAccount(ctx context.Context, id, email string) (*Account, error) {
	a, err := scanAccount(db.pool.QueryRow(ctx,
		`INSERT INTO accounts (id, email, plan)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE
		   SET email = CASE WHEN EXCLUDED.email <> '' THEN EXCLUDED.email ELSE accounts.email END
		 RETURNING `+accountColumns,
		id, email, PlanFree))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return a, nil
}

// ListAccounts retrieves all accounts, newest first.
func (db *DB) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, nil
}

// UpdatePlan changes an account's plan and bumps updated_at.
// Returns nil, nil when the account does not exist.
func (db *DB) UpdatePlan(ctx context.Context, id string, plan Plan) (*Account, error) {
	a, err := scanAccount(db.pool.QueryRow(ctx,
		`UPDATE accounts SET plan = $1, updated_at = NOW() WHERE id = $2
		 RETURNING `+accountColumns,
		plan, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return a, nil
}

// SetBillingRefs stores the billing provider's customer and subscription ids.
func (db *DB) SetBillingRefs(ctx context.Context, id, customerID, subscriptionID string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE accounts SET billing_customer_id = $1, billing_subscription_id = $2
		 WHERE id = $3`,
		customerID, subscriptionID, id)
	if err != nil {
		return fmt.Errorf("failed to set billing refs: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// DeleteAccount erases an account and everything it owns: sessions and
// scheduled mocks go in the same transaction.
func (db *DB) DeleteAccount(ctx context.Context, id string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin erasure: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM interview_sessions WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM scheduled_mocks WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete scheduled mocks: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}

	return tx.Commit(ctx)
}
