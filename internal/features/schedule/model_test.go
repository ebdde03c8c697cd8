package schedule

import "testing"

func TestValidateShiftTimes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid shift", "09:00", "17:00", false},
		{"end equals start", "09:00", "09:00", true},
		{"end before start", "17:00", "09:00", true},
		{"bad start format", "9am", "17:00", true},
		{"bad end format", "09:00", "5pm", true},
		{"minute precision", "09:15", "09:16", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShiftTimes(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShiftTimes(%q, %q) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestValidateShiftDay(t *testing.T) {
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		if err := ValidateShiftDay(day); err != nil {
			t.Errorf("ValidateShiftDay(%q) = %v, want nil", day, err)
		}
	}
	for _, day := range []string{"Monday", "mon", "funday", ""} {
		if err := ValidateShiftDay(day); err == nil {
			t.Errorf("ValidateShiftDay(%q) = nil, want error", day)
		}
	}
}
