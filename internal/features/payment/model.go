package payment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusConfirmed = "confirmed"
	StatusDisputed  = "disputed"
	StatusCancelled = "cancelled"
)

// statusTransitions is the payment lifecycle. A paid payment can still be
// disputed by the employee; a disputed one is either re-paid or cancelled.
// Confirmed is terminal, and a cancelled payment can be reopened.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusConfirmed, StatusDisputed},
	StatusDisputed:  {StatusPaid, StatusCancelled},
	StatusConfirmed: {},
	StatusCancelled: {StatusPending},
}

// CanTransition reports whether a payment may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether the string is a known payment status.
func IsValidStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

// Payment covers one employee for one pay period, normally derived from the
// employee's approved timesheets.
type Payment struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	EmployeeID   primitive.ObjectID   `json:"employee_id" bson:"employee_id"`
	PeriodStart  time.Time            `json:"period_start" bson:"period_start"`
	PeriodEnd    time.Time            `json:"period_end" bson:"period_end"`
	TotalHours   float64              `json:"total_hours" bson:"total_hours"`
	HourlyRate   float64              `json:"hourly_rate" bson:"hourly_rate"`
	Amount       float64              `json:"amount" bson:"amount"`
	Status       string               `json:"status" bson:"status"`
	TimesheetIDs []primitive.ObjectID `json:"timesheet_ids,omitempty" bson:"timesheet_ids,omitempty"`
	PaidAt       *time.Time           `json:"payment_date,omitempty" bson:"paid_at,omitempty"`
	ConfirmedAt  *time.Time           `json:"confirmation_date,omitempty" bson:"confirmation_date,omitempty"`
	Notes        string               `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`

	// Enriched at read time, not persisted.
	EmployeeName string `json:"employee_name,omitempty" bson:"-"`
}
