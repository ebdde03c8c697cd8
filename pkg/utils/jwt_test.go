package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userID := primitive.NewObjectID()
	roleID := primitive.NewObjectID().Hex()

	token, err := issuer.Generate(userID, roleID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != userID.Hex() {
		t.Errorf("UserID = %q, want %q", claims.UserID, userID.Hex())
	}
	if claims.RoleID != roleID {
		t.Errorf("RoleID = %q, want %q", claims.RoleID, roleID)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Generate(primitive.NewObjectID(), "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("Validate() with wrong secret succeeded, want error")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Generate(primitive.NewObjectID(), "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := issuer.Validate(token); err == nil {
		t.Error("Validate() on expired token succeeded, want error")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	if _, err := issuer.Validate("not.a.token"); err == nil {
		t.Error("Validate() on garbage succeeded, want error")
	}
}
