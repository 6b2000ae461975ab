package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/db"
)

func TestStageFor(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		until time.Duration
		want  db.NotifyStage
	}{
		{"two hours out", 2 * time.Hour, db.StageUnset},
		{"exactly one hour", time.Hour, db.Stage1H},
		{"45 minutes", 45 * time.Minute, db.Stage1H},
		{"exactly 30 minutes", 30 * time.Minute, db.Stage30M},
		{"10 minutes", 10 * time.Minute, db.Stage30M},
		{"exactly 5 minutes", 5 * time.Minute, db.Stage5M},
		{"1 minute", time.Minute, db.Stage5M},
		{"already started", -time.Minute, db.StageUnset},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StageFor(now.Add(tc.until), now))
		})
	}
}

type fakeMockStore struct {
	mu      sync.Mutex
	mocks   []db.ScheduledMock
	stages  map[uuid.UUID]db.NotifyStage
	listErr error
}

func (f *fakeMockStore) ListUpcomingMocks(_ context.Context, now, until time.Time) ([]db.ScheduledMock, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []db.ScheduledMock
	for _, m := range f.mocks {
		if m.ScheduledFor.After(now) && !m.ScheduledFor.After(until) && m.NotifiedStage != db.Stage5M {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMockStore) AdvanceMockStage(_ context.Context, id uuid.UUID, stage db.NotifyStage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stages == nil {
		f.stages = map[uuid.UUID]db.NotifyStage{}
	}
	f.stages[id] = stage
	for i := range f.mocks {
		if f.mocks[i].ID == id {
			f.mocks[i].NotifiedStage = stage
		}
	}
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []db.NotifyStage
	byID map[uuid.UUID][]db.NotifyStage
	fail bool
}

func (n *recordingNotifier) Notify(_ context.Context, mock db.ScheduledMock, stage db.NotifyStage) error {
	if n.fail {
		return errors.New("smtp unavailable")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.byID == nil {
		n.byID = map[uuid.UUID][]db.NotifyStage{}
	}
	n.sent = append(n.sent, stage)
	n.byID[mock.ID] = append(n.byID[mock.ID], stage)
	return nil
}

func newTestSweeper(store *fakeMockStore, notifier Notifier, now time.Time) *Sweeper {
	s := NewSweeper(store, notifier, nil)
	s.now = func() time.Time { return now }
	return s
}

func TestSweep_DispatchesDueStages(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	soon := db.ScheduledMock{ID: uuid.New(), ScheduledFor: now.Add(4 * time.Minute), NotifiedStage: db.Stage30M}
	later := db.ScheduledMock{ID: uuid.New(), ScheduledFor: now.Add(50 * time.Minute), NotifiedStage: db.StageUnset}
	farOut := db.ScheduledMock{ID: uuid.New(), ScheduledFor: now.Add(3 * time.Hour), NotifiedStage: db.StageUnset}

	store := &fakeMockStore{mocks: []db.ScheduledMock{soon, later, farOut}}
	notifier := &recordingNotifier{}
	sweeper := newTestSweeper(store, notifier, now)

	require.NoError(t, sweeper.Sweep(context.Background()))
	assert.Equal(t, db.Stage5M, store.stages[soon.ID])
	assert.Equal(t, db.Stage1H, store.stages[later.ID])
	_, notified := store.stages[farOut.ID]
	assert.False(t, notified, "a mock outside the window gets no reminder")
	assert.Len(t, notifier.sent, 2)
}

func TestSweep_StageNeverRegresses(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	// already past the 30m reminder; stage recomputes to 30m again
	mock := db.ScheduledMock{ID: uuid.New(), ScheduledFor: now.Add(20 * time.Minute), NotifiedStage: db.Stage30M}

	store := &fakeMockStore{mocks: []db.ScheduledMock{mock}}
	notifier := &recordingNotifier{}
	sweeper := newTestSweeper(store, notifier, now)

	require.NoError(t, sweeper.Sweep(context.Background()))
	assert.Empty(t, notifier.sent)
}

func TestSweep_FailedDispatchRetriesNextSweep(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	mock := db.ScheduledMock{ID: uuid.New(), ScheduledFor: now.Add(25 * time.Minute), NotifiedStage: db.StageUnset}

	store := &fakeMockStore{mocks: []db.ScheduledMock{mock}}
	notifier := &recordingNotifier{fail: true}
	sweeper := newTestSweeper(store, notifier, now)

	require.NoError(t, sweeper.Sweep(context.Background()))
	_, advanced := store.stages[mock.ID]
	assert.False(t, advanced, "stage must stay put when dispatch fails")

	notifier.fail = false
	require.NoError(t, sweeper.Sweep(context.Background()))
	assert.Equal(t, db.Stage30M, store.stages[mock.ID])
	assert.Equal(t, []db.NotifyStage{db.Stage30M}, notifier.sent)
}

func TestSweep_EachStageSentOnce(t *testing.T) {
	start := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	scheduled := start.Add(65 * time.Minute)
	mock := db.ScheduledMock{ID: uuid.New(), ScheduledFor: scheduled, NotifiedStage: db.StageUnset}
	store := &fakeMockStore{mocks: []db.ScheduledMock{mock}}
	notifier := &recordingNotifier{}

	// sweep every minute until the mock begins
	for now := start; now.Before(scheduled); now = now.Add(time.Minute) {
		sweeper := newTestSweeper(store, notifier, now)
		require.NoError(t, sweeper.Sweep(context.Background()))
	}

	assert.Equal(t, []db.NotifyStage{db.Stage1H, db.Stage30M, db.Stage5M}, notifier.byID[mock.ID])
}

func TestSweep_ListErrorPropagates(t *testing.T) {
	store := &fakeMockStore{listErr: errors.New("connection refused")}
	sweeper := newTestSweeper(store, &recordingNotifier{}, time.Now())
	assert.Error(t, sweeper.Sweep(context.Background()))
}
