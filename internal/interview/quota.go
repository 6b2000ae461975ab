package interview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/db"
)

// AccountStore is the account persistence surface the quota policy and the
// service need. *db.DB satisfies it.
type AccountStore interface {
	GetAccount(ctx context.Context, id string) (*db.Account, error)
	UpsertAccount(ctx context.Context, id, email string) (*db.Account, error)
}

// SessionCounter counts sessions created inside a window, for quota checks.
type SessionCounter interface {
	CountSessionsCreatedBetween(ctx context.Context, accountID string, from, to time.Time) (int, error)
}

// QuotaPolicy enforces the monthly interview-creation cap for Free accounts.
// Premium accounts and accounts with no stored record are never limited.
type QuotaPolicy struct {
	accounts AccountStore
	sessions SessionCounter
	limit    int
	log      *zap.Logger
}

func NewQuotaPolicy(accounts AccountStore, sessions SessionCounter, limit int, log *zap.Logger) *QuotaPolicy {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuotaPolicy{accounts: accounts, sessions: sessions, limit: limit, log: log}
}

// CanCreate returns nil when the account may create another interview at the
// given instant, or a typed error describing why not.
func (p *QuotaPolicy) CanCreate(ctx context.Context, accountID string, now time.Time) error {
	if accountID == "" {
		return &ErrMissingIdentity{}
	}

	account, err := p.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return &ErrStorage{Op: "quota account lookup", Cause: err}
	}
	// Unknown accounts are treated as unlimited; the cap only binds accounts
	// we know to be on the Free plan. A mid-month upgrade is covered here too,
	// since the plan check reads the current record.
	if account == nil || account.Plan == db.PlanPremium {
		return nil
	}

	from := startOfMonth(now)
	to := from.AddDate(0, 1, 0)
	count, err := p.sessions.CountSessionsCreatedBetween(ctx, accountID, from, to)
	if err != nil {
		return &ErrStorage{Op: "quota session count", Cause: err}
	}
	if count >= p.limit {
		p.log.Info("monthly quota reached",
			zap.String("account_id", accountID),
			zap.Int("count", count),
			zap.Int("limit", p.limit))
		return &ErrQuotaExceeded{Limit: p.limit}
	}
	return nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
