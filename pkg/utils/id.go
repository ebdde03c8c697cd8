package utils

import (
	"go-wfm/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts a hex string into the canonical ObjectID. Ids are stored as
// ObjectID everywhere; the hex form exists only at the API edge, so a value
// that does not parse is a client error, never a lookup fallback.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid id %q", id)
	}
	return oid, nil
}
