package inventory

import (
	"time"

	"go-wfm/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
)

// RequestItem is one line of an inventory request.
type RequestItem struct {
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
	Unit     string `json:"unit,omitempty" bson:"unit,omitempty"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// InventoryRequest is a store's restock order. Only pending requests can be
// edited; fulfilled and cancelled are terminal.
type InventoryRequest struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	StoreID     primitive.ObjectID  `json:"store_id" bson:"store_id"`
	RequestedBy primitive.ObjectID  `json:"requested_by" bson:"requested_by"`
	Items       []RequestItem       `json:"items" bson:"items"`
	Status      string              `json:"status" bson:"status"`
	Notes       string              `json:"notes,omitempty" bson:"notes,omitempty"`
	ResolvedBy  *primitive.ObjectID `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
	ResolvedAt  *time.Time          `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`

	// Enriched at read time, not persisted.
	StoreName       string `json:"store_name,omitempty" bson:"-"`
	RequesterName   string `json:"requester_name,omitempty" bson:"-"`
}

// ValidateItems checks the request has at least one line and every line has
// a name and a positive quantity.
func ValidateItems(items []RequestItem) error {
	if len(items) == 0 {
		return apperr.Validation("at least one item is required")
	}
	for i, item := range items {
		if item.Name == "" {
			return apperr.Validation("item %d is missing a name", i)
		}
		if item.Quantity <= 0 {
			return apperr.Validation("item %q must have a positive quantity", item.Name)
		}
	}
	return nil
}
