package hours

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Break is an embedded pause inside a clock record. An open break has a
// zero EndedAt.
type Break struct {
	StartedAt time.Time `json:"started_at" bson:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
}

// HourRecord is one clock-in/clock-out cycle for an employee. ClockOut stays
// nil while the record is open; TotalMinutes is derived on clock-out.
type HourRecord struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	EmployeeID   primitive.ObjectID  `json:"employee_id" bson:"employee_id"`
	StoreID      *primitive.ObjectID `json:"store_id,omitempty" bson:"store_id,omitempty"`
	ClockIn      time.Time           `json:"clock_in" bson:"clock_in"`
	ClockOut     *time.Time          `json:"clock_out,omitempty" bson:"clock_out,omitempty"`
	Breaks       []Break             `json:"breaks,omitempty" bson:"breaks,omitempty"`
	TotalMinutes int64               `json:"total_minutes" bson:"total_minutes"`
	Status       string              `json:"status" bson:"status"`
	Notes        string              `json:"notes,omitempty" bson:"notes,omitempty"`
	ReviewNotes  string              `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	ApprovedBy   *primitive.ObjectID `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`

	// Enriched at read time, not persisted.
	EmployeeName string `json:"employee_name,omitempty" bson:"-"`
}

// OpenBreak returns the index of the break without an end, or -1.
func (h *HourRecord) OpenBreak() int {
	for i := range h.Breaks {
		if h.Breaks[i].EndedAt.IsZero() {
			return i
		}
	}
	return -1
}

// WorkedMinutes computes the clock span minus completed breaks. It returns 0
// while the record is still open.
func (h *HourRecord) WorkedMinutes() int64 {
	if h.ClockOut == nil {
		return 0
	}
	total := h.ClockOut.Sub(h.ClockIn)
	for _, b := range h.Breaks {
		if b.EndedAt.IsZero() {
			continue
		}
		total -= b.EndedAt.Sub(b.StartedAt)
	}
	if total < 0 {
		return 0
	}
	return int64(total.Minutes())
}
