package timesheet

import (
	"time"

	"go-wfm/internal/common/apperr"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Timesheet aggregates an employee's hours over a pay period. DailyHours is
// keyed by lowercase day name (monday..sunday). HourlyRate is captured from
// the employee record when the sheet is created so later rate changes do not
// rewrite historical sheets.
type Timesheet struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	EmployeeID    primitive.ObjectID  `json:"employee_id" bson:"employee_id"`
	StoreID       *primitive.ObjectID `json:"store_id,omitempty" bson:"store_id,omitempty"`
	PeriodStart   time.Time           `json:"period_start" bson:"period_start"`
	PeriodEnd     time.Time           `json:"period_end" bson:"period_end"`
	DailyHours    map[string]float64  `json:"daily_hours" bson:"daily_hours"`
	TotalHours    float64             `json:"total_hours" bson:"total_hours"`
	HourlyRate    float64             `json:"hourly_rate" bson:"hourly_rate"`
	TotalEarnings float64             `json:"total_earnings" bson:"total_earnings"`
	Status        string              `json:"status" bson:"status"`
	Notes         string              `json:"notes,omitempty" bson:"notes,omitempty"`
	ReviewNotes   string              `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	PaymentID     *primitive.ObjectID `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	SubmittedAt   *time.Time          `json:"submitted_at,omitempty" bson:"submitted_at,omitempty"`
	ReviewedBy    *primitive.ObjectID `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`

	// Enriched at read time, not persisted.
	EmployeeName string `json:"employee_name,omitempty" bson:"-"`
}

// statusTransitions is the full edit graph. Draft and rejected sheets can be
// submitted; submitted sheets are decided by a reviewer.
var statusTransitions = map[string][]string{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusRejected:  {StatusSubmitted},
	StatusApproved:  {},
}

// CanTransition reports whether a sheet may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Editable reports whether the sheet's hours can still be changed.
func (t *Timesheet) Editable() bool {
	return t.Status == StatusDraft || t.Status == StatusRejected
}

var validDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// ValidateDailyHours checks every entry is keyed by a lowercase day name and
// carries an hour value between 0 and 24.
func ValidateDailyHours(daily map[string]float64) error {
	for day, hrs := range daily {
		if !validDays[day] {
			return apperr.Validation("invalid daily_hours key %q, expected a lowercase day name", day)
		}
		if hrs < 0 || hrs > 24 {
			return apperr.Validation("hours for %s must be between 0 and 24", day)
		}
	}
	return nil
}

// Recalculate derives total hours and earnings from the daily entries.
// Earnings are computed with decimal arithmetic and rounded to cents.
func (t *Timesheet) Recalculate() {
	total := decimal.Zero
	for _, hrs := range t.DailyHours {
		total = total.Add(decimal.NewFromFloat(hrs))
	}
	rate := decimal.NewFromFloat(t.HourlyRate)

	t.TotalHours, _ = total.Float64()
	t.TotalEarnings, _ = total.Mul(rate).Round(2).Float64()
}
