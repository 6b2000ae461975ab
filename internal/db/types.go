package db

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a subscription tier controlling the monthly creation quota.
type Plan string

// Subscription plans
const (
	PlanFree    Plan = "Free"
	PlanPremium Plan = "Premium"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPremium
}

// Mode is the answer medium for an interview session.
type Mode string

// Session modes
const (
	ModeText  Mode = "text"
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeText || m == ModeAudio || m == ModeVideo
}

// Status is the lifecycle state of an interview session. Transitions are
// monotonic: created -> in_progress -> completed.
type Status string

// Session statuses
const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Account represents a registered account, keyed by the external identity
// provider's user id. Created lazily on first interview creation or first
// webhook event.
type Account struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	Plan                  Plan      `json:"plan"`
	BillingCustomerID     string    `json:"billing_customer_id,omitempty"`
	BillingSubscriptionID string    `json:"billing_subscription_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// InterviewSession is one interview attempt. The answers, feedback, and
// ideal_answers slices align positionally with questions once populated.
type InterviewSession struct {
	ID              uuid.UUID `json:"id"`
	Mode            Mode      `json:"mode"`
	JobRole         string    `json:"job_role"`
	Industry        string    `json:"industry,omitempty"`
	Experience      string    `json:"experience"`
	ResumeText      string    `json:"resume_text,omitempty"`
	JobDescription  string    `json:"job_description,omitempty"`
	Questions       []string  `json:"questions"`
	Answers         []string  `json:"answers"`
	Feedback        []string  `json:"feedback"`
	IdealAnswers    []string  `json:"ideal_answers"`
	OverallFeedback string    `json:"overall_feedback,omitempty"`
	Score           *int      `json:"score,omitempty"` // 0-95, absent until completion
	Status          Status    `json:"status"`
	AccountID       string    `json:"account_id"`
	Email           string    `json:"email,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NotifyStage tracks which reminder has been sent for a scheduled mock.
// Stages only advance: unset -> 1h -> 30m -> 5m.
type NotifyStage string

// Reminder stages
const (
	StageUnset NotifyStage = "unset"
	Stage1H    NotifyStage = "1h"
	Stage30M   NotifyStage = "30m"
	Stage5M    NotifyStage = "5m"
)

// ScheduledMock is a future-dated interview request with reminder tracking.
type ScheduledMock struct {
	ID             uuid.UUID   `json:"id"`
	AccountID      string      `json:"account_id"`
	Email          string      `json:"email"`
	ScheduledFor   time.Time   `json:"scheduled_for"`
	Mode           Mode        `json:"mode,omitempty"`
	JobRole        string      `json:"job_role,omitempty"`
	Industry       string      `json:"industry,omitempty"`
	Experience     string      `json:"experience,omitempty"`
	ResumeText     string      `json:"resume_text,omitempty"`
	JobDescription string      `json:"job_description,omitempty"`
	NotifiedStage  NotifyStage `json:"notified_stage"`
	CreatedAt      time.Time   `json:"created_at"`
}
