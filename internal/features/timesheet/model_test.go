package timesheet

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"draft to submitted", StatusDraft, StatusSubmitted, true},
		{"draft to approved", StatusDraft, StatusApproved, false},
		{"submitted to approved", StatusSubmitted, StatusApproved, true},
		{"submitted to rejected", StatusSubmitted, StatusRejected, true},
		{"submitted to draft", StatusSubmitted, StatusDraft, false},
		{"rejected resubmit", StatusRejected, StatusSubmitted, true},
		{"rejected to approved", StatusRejected, StatusApproved, false},
		{"approved is terminal", StatusApproved, StatusSubmitted, false},
		{"unknown status", "bogus", StatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestEditable(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusDraft, true},
		{StatusRejected, true},
		{StatusSubmitted, false},
		{StatusApproved, false},
	}

	for _, tt := range tests {
		sheet := &Timesheet{Status: tt.status}
		if got := sheet.Editable(); got != tt.want {
			t.Errorf("Editable() in status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidateDailyHours(t *testing.T) {
	tests := []struct {
		name    string
		daily   map[string]float64
		wantErr bool
	}{
		{"valid entries", map[string]float64{"monday": 8, "tuesday": 7.5}, false},
		{"empty map", map[string]float64{}, false},
		{"capitalized day", map[string]float64{"Monday": 8}, true},
		{"bad key", map[string]float64{"2024-03-04": 8}, true},
		{"negative hours", map[string]float64{"monday": -1}, true},
		{"over 24 hours", map[string]float64{"monday": 25}, true},
		{"boundary 24 hours", map[string]float64{"monday": 24}, false},
		{"boundary zero hours", map[string]float64{"monday": 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDailyHours(tt.daily)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDailyHours() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name         string
		daily        map[string]float64
		rate         float64
		wantHours    float64
		wantEarnings float64
	}{
		{
			name:         "fractional hours round to cents",
			daily:        map[string]float64{"monday": 8, "tuesday": 7.5},
			rate:         15.50,
			wantHours:    15.5,
			wantEarnings: 240.25,
		},
		{
			name:         "repeating decimal rounds",
			daily:        map[string]float64{"monday": 1.0 / 3.0 * 3},
			rate:         10,
			wantHours:    1,
			wantEarnings: 10,
		},
		{
			name:         "empty sheet",
			daily:        map[string]float64{},
			rate:         20,
			wantHours:    0,
			wantEarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := &Timesheet{DailyHours: tt.daily, HourlyRate: tt.rate}
			sheet.Recalculate()
			if sheet.TotalHours != tt.wantHours {
				t.Errorf("TotalHours = %v, want %v", sheet.TotalHours, tt.wantHours)
			}
			if sheet.TotalEarnings != tt.wantEarnings {
				t.Errorf("TotalEarnings = %v, want %v", sheet.TotalEarnings, tt.wantEarnings)
			}
		})
	}
}
