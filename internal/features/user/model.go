package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Email     string              `json:"email" bson:"email"`
	Password  string              `json:"-" bson:"password"` // bcrypt hash, never serialized
	FullName  string              `json:"full_name" bson:"full_name"`
	Phone     string              `json:"phone,omitempty" bson:"phone,omitempty"`
	RoleID    *primitive.ObjectID `json:"role_id,omitempty" bson:"role_id,omitempty"`
	Active    bool                `json:"active" bson:"active"`
	LastLogin *time.Time          `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`

	// Enriched at read time, not persisted.
	RoleName string `json:"role_name,omitempty" bson:"-"`
}
