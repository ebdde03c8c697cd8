package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
