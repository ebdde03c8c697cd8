package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"`
	Address   string              `json:"address,omitempty" bson:"address,omitempty"`
	City      string              `json:"city,omitempty" bson:"city,omitempty"`
	State     string              `json:"state,omitempty" bson:"state,omitempty"`
	Zip       string              `json:"zip,omitempty" bson:"zip,omitempty"`
	Phone     string              `json:"phone,omitempty" bson:"phone,omitempty"`
	ManagerID *primitive.ObjectID `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
	Active    bool                `json:"active" bson:"active"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`

	// Enriched at read time, not persisted.
	ManagerName string `json:"manager_name,omitempty" bson:"-"`
}
