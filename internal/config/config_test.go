package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("WFM_TEST_KEY", "value")
	if got := getEnv("WFM_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("getEnv() = %q, want %q", got, "value")
	}
	if got := getEnv("WFM_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv() fallback = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("WFM_TEST_INT", "42")
	if got := getEnvInt("WFM_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt() = %d, want 42", got)
	}

	t.Setenv("WFM_TEST_BAD_INT", "not-a-number")
	if got := getEnvInt("WFM_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvInt() with bad value = %d, want fallback 7", got)
	}
	if got := getEnvInt("WFM_TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("getEnvInt() missing = %d, want fallback 7", got)
	}
}
