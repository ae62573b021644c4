package gtfs

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:15:30", 8*3600 + 15*60 + 30, false},
		{"00:00:00", 0, false},
		{"23:59:59", 23*3600 + 59*60 + 59, false},
		// Service-day continuation past midnight is accepted.
		{"25:10:00", 25*3600 + 10*60, false},
		{" 09:00:00 ", 9 * 3600, false},
		{"48:00:00", 0, true},
		{"08:60:00", 0, true},
		{"08:00:61", 0, true},
		{"8am", 0, true},
		{"08:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if int(got) != tt.want {
				t.Errorf("got %d seconds, want %d", int(got), tt.want)
			}
		})
	}
}

func TestTimeOfDayFormatting(t *testing.T) {
	tod, err := ParseTimeOfDay("25:10:05")
	if err != nil {
		t.Fatal(err)
	}
	if got := tod.String(); got != "25:10:05" {
		t.Errorf("String() = %q, want raw service-day time", got)
	}
	// Past-midnight times normalize into the next calendar day for display.
	if got := tod.Clock(); got != "01:10" {
		t.Errorf("Clock() = %q, want 01:10", got)
	}
	if got := tod.SecondsOfDay(); got != 3600+10*60+5 {
		t.Errorf("SecondsOfDay() = %d", got)
	}
}

func TestDurationMinutes(t *testing.T) {
	mustParse := func(s string) TimeOfDay {
		t.Helper()
		v, err := ParseTimeOfDay(s)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	tests := []struct {
		name     string
		dep, arr string
		want     int
	}{
		{"same hour", "10:00:00", "10:20:00", 20},
		{"across hours", "09:45:00", "11:05:00", 80},
		// Arrival numerically earlier than departure means the trip
		// crossed midnight.
		{"overnight wraparound", "23:50:00", "00:10:00", 20},
		{"zero", "12:00:00", "12:00:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationMinutes(mustParse(tt.dep), mustParse(tt.arr)); got != tt.want {
				t.Errorf("DurationMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNowTimeOfDay(t *testing.T) {
	at := time.Date(2024, 3, 14, 8, 10, 30, 0, time.UTC)
	if got := NowTimeOfDay(at); int(got) != 8*3600+10*60+30 {
		t.Errorf("NowTimeOfDay = %d", int(got))
	}
}
