package schedule

import (
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shift is an embedded sub-document of a Schedule. Days are week-day names;
// the concrete date follows from the schedule's week_start_date.
type Shift struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	Day        string             `json:"day" bson:"day"`
	StartTime  string             `json:"start_time" bson:"start_time"` // "HH:MM"
	EndTime    string             `json:"end_time" bson:"end_time"`
	Notes      string             `json:"notes,omitempty" bson:"notes,omitempty"`

	// Enriched at read time, not persisted.
	EmployeeName string `json:"employee_name,omitempty" bson:"-"`
}

type Schedule struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreID       primitive.ObjectID `json:"store_id" bson:"store_id"`
	Title         string             `json:"title" bson:"title"`
	WeekStartDate time.Time          `json:"week_start_date" bson:"week_start_date"`
	WeekEndDate   time.Time          `json:"week_end_date" bson:"week_end_date"`
	Shifts        []Shift            `json:"shifts" bson:"shifts"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`

	// Enriched at read time, not persisted.
	StoreName string `json:"store_name,omitempty" bson:"-"`
}

// ValidateShiftTimes checks both times parse as HH:MM and end is after start.
func ValidateShiftTimes(start, end string) error {
	startT, err := time.Parse("15:04", start)
	if err != nil {
		return apperr.Validation("invalid start_time %q, expected HH:MM", start)
	}
	endT, err := time.Parse("15:04", end)
	if err != nil {
		return apperr.Validation("invalid end_time %q, expected HH:MM", end)
	}
	if !endT.After(startT) {
		return apperr.Validation("end_time %q must be after start_time %q", end, start)
	}
	return nil
}

// ValidateShiftDay checks the day is a week-day name.
func ValidateShiftDay(day string) error {
	if !models.IsWeekDay(day) {
		return apperr.Validation("invalid day %q", day)
	}
	return nil
}
