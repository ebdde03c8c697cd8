package utils

import (
	"testing"

	"go-wfm/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := ParseID(oid.Hex())
	if err != nil {
		t.Fatalf("ParseID(%q) error = %v", oid.Hex(), err)
	}
	if got != oid {
		t.Errorf("ParseID() = %v, want %v", got, oid)
	}

	for _, bad := range []string{"", "nothex", "1234", oid.Hex() + "ff"} {
		_, err := ParseID(bad)
		if err == nil {
			t.Errorf("ParseID(%q) = nil error, want validation error", bad)
			continue
		}
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("ParseID(%q) kind = %v, want KindValidation", bad, apperr.KindOf(err))
		}
	}
}
