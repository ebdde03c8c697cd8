package payment

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to paid", StatusPending, StatusPaid, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to confirmed", StatusPending, StatusConfirmed, false},
		{"paid to confirmed", StatusPaid, StatusConfirmed, true},
		{"paid to disputed", StatusPaid, StatusDisputed, true},
		{"paid to cancelled", StatusPaid, StatusCancelled, false},
		{"disputed re-paid", StatusDisputed, StatusPaid, true},
		{"disputed cancelled", StatusDisputed, StatusCancelled, true},
		{"confirmed is terminal", StatusConfirmed, StatusDisputed, false},
		{"cancelled reopens", StatusCancelled, StatusPending, true},
		{"cancelled to paid", StatusCancelled, StatusPaid, false},
		{"unknown status", "bogus", StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusPaid, StatusConfirmed, StatusDisputed, StatusCancelled} {
		if !IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = false, want true", status)
		}
	}
	if IsValidStatus("refunded") {
		t.Error(`IsValidStatus("refunded") = true, want false`)
	}
}
