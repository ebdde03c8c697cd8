package hours

import (
	"testing"
	"time"
)

func TestWorkedMinutes(t *testing.T) {
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name   string
		record HourRecord
		want   int64
	}{
		{
			name:   "open record counts nothing",
			record: HourRecord{ClockIn: base},
			want:   0,
		},
		{
			name: "plain eight hour day",
			record: func() HourRecord {
				out := at(8, 0)
				return HourRecord{ClockIn: base, ClockOut: &out}
			}(),
			want: 480,
		},
		{
			name: "completed break subtracted",
			record: func() HourRecord {
				out := at(8, 0)
				return HourRecord{
					ClockIn:  base,
					ClockOut: &out,
					Breaks:   []Break{{StartedAt: at(4, 0), EndedAt: at(4, 30)}},
				}
			}(),
			want: 450,
		},
		{
			name: "open break ignored",
			record: func() HourRecord {
				out := at(8, 0)
				return HourRecord{
					ClockIn:  base,
					ClockOut: &out,
					Breaks:   []Break{{StartedAt: at(4, 0)}},
				}
			}(),
			want: 480,
		},
		{
			name: "breaks longer than shift clamp to zero",
			record: func() HourRecord {
				out := at(1, 0)
				return HourRecord{
					ClockIn:  base,
					ClockOut: &out,
					Breaks:   []Break{{StartedAt: base, EndedAt: at(2, 0)}},
				}
			}(),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.WorkedMinutes(); got != tt.want {
				t.Errorf("WorkedMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOpenBreak(t *testing.T) {
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	record := HourRecord{Breaks: []Break{
		{StartedAt: base, EndedAt: base.Add(15 * time.Minute)},
		{StartedAt: base.Add(time.Hour)},
	}}
	if got := record.OpenBreak(); got != 1 {
		t.Errorf("OpenBreak() = %d, want 1", got)
	}

	record.Breaks[1].EndedAt = base.Add(2 * time.Hour)
	if got := record.OpenBreak(); got != -1 {
		t.Errorf("OpenBreak() after closing = %d, want -1", got)
	}

	empty := HourRecord{}
	if got := empty.OpenBreak(); got != -1 {
		t.Errorf("OpenBreak() with no breaks = %d, want -1", got)
	}
}
