// Package reminder sends staged notifications (1h, 30m, 5m) ahead of
// scheduled mock interviews. A periodic sweep computes the due stage for each
// upcoming mock and dispatches through an injected Notifier.
package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-prep/internal/db"
)

// Stage lead times, largest first.
const (
	lead1H  = time.Hour
	lead30M = 30 * time.Minute
	lead5M  = 5 * time.Minute
)

// maxConcurrentNotifications bounds parallel dispatch in one sweep.
const maxConcurrentNotifications = 8

// Notifier delivers one reminder. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, mock db.ScheduledMock, stage db.NotifyStage) error
}

// MockStore is the persistence surface the sweep needs. *db.DB satisfies it.
type MockStore interface {
	ListUpcomingMocks(ctx context.Context, now, until time.Time) ([]db.ScheduledMock, error)
	AdvanceMockStage(ctx context.Context, id uuid.UUID, stage db.NotifyStage) error
}

// StageFor returns the reminder stage due for a mock scheduled at
// scheduledFor, as of now. StageUnset means no reminder is due yet; past
// mocks get no stage.
func StageFor(scheduledFor, now time.Time) db.NotifyStage {
	remaining := scheduledFor.Sub(now)
	switch {
	case remaining <= 0:
		return db.StageUnset
	case remaining <= lead5M:
		return db.Stage5M
	case remaining <= lead30M:
		return db.Stage30M
	case remaining <= lead1H:
		return db.Stage1H
	default:
		return db.StageUnset
	}
}

// stageRank orders stages so they only ever advance.
func stageRank(s db.NotifyStage) int {
	switch s {
	case db.Stage1H:
		return 1
	case db.Stage30M:
		return 2
	case db.Stage5M:
		return 3
	default:
		return 0
	}
}

// Sweeper runs reminder sweeps against the store.
type Sweeper struct {
	store    MockStore
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewSweeper(store MockStore, notifier Notifier, log *zap.Logger) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{store: store, notifier: notifier, log: log, now: time.Now}
}

// Sweep finds mocks starting within the next hour, dispatches any newly due
// reminders concurrently, and advances each mock's recorded stage. A failed
// notification leaves the stage untouched so the next sweep retries it.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.now()
	mocks, err := s.store.ListUpcomingMocks(ctx, now, now.Add(lead1H))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentNotifications)
	for _, mock := range mocks {
		stage := StageFor(mock.ScheduledFor, now)
		if stageRank(stage) <= stageRank(mock.NotifiedStage) {
			continue
		}
		mock := mock
		g.Go(func() error {
			if err := s.notifier.Notify(ctx, mock, stage); err != nil {
				s.log.Warn("reminder dispatch failed",
					zap.String("mock_id", mock.ID.String()),
					zap.String("stage", string(stage)),
					zap.Error(err))
				return nil
			}
			if err := s.store.AdvanceMockStage(ctx, mock.ID, stage); err != nil {
				s.log.Error("failed to record reminder stage",
					zap.String("mock_id", mock.ID.String()),
					zap.String("stage", string(stage)),
					zap.Error(err))
				return nil
			}
			s.log.Info("reminder sent",
				zap.String("mock_id", mock.ID.String()),
				zap.String("account_id", mock.AccountID),
				zap.String("stage", string(stage)))
			return nil
		})
	}
	return g.Wait()
}

// LogNotifier is the default Notifier: it only logs. Real delivery (email,
// push) plugs in behind the same interface.
type LogNotifier struct {
	Log *zap.Logger
}

func (n *LogNotifier) Notify(_ context.Context, mock db.ScheduledMock, stage db.NotifyStage) error {
	n.Log.Info("mock interview reminder",
		zap.String("email", mock.Email),
		zap.String("job_role", mock.JobRole),
		zap.Time("scheduled_for", mock.ScheduledFor),
		zap.String("stage", string(stage)))
	return nil
}
