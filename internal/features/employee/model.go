package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusOnLeave, StatusTerminated:
		return true
	}
	return false
}

type Employee struct {
	ID                    primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID                *primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Position              string              `json:"position" bson:"position"`
	HourlyRate            float64             `json:"hourly_rate" bson:"hourly_rate"`
	EmploymentStatus      string              `json:"employment_status" bson:"employment_status"`
	StoreID               *primitive.ObjectID `json:"store_id,omitempty" bson:"store_id,omitempty"`
	HireDate              time.Time           `json:"hire_date" bson:"hire_date"`
	EmergencyContactName  string              `json:"emergency_contact_name,omitempty" bson:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string              `json:"emergency_contact_phone,omitempty" bson:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at" bson:"updated_at"`

	// Enriched at read time from the linked user and store, not persisted.
	FullName  string `json:"full_name,omitempty" bson:"-"`
	Email     string `json:"email,omitempty" bson:"-"`
	Phone     string `json:"phone,omitempty" bson:"-"`
	StoreName string `json:"store_name,omitempty" bson:"-"`
}
