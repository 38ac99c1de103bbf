package costbasis

import (
	"testing"
	"time"
)

func TestDate_Add(t *testing.T) {
	testCases := []struct {
		name string
		from string
		days int
		want string
	}{
		{"within month", "2024-01-10", 5, "2024-01-15"},
		{"across month", "2024-01-30", 5, "2024-02-04"},
		{"across leap day", "2024-02-28", 1, "2024-02-29"},
		{"across year", "2024-12-30", 5, "2025-01-04"},
		{"negative", "2024-03-01", -1, "2024-02-29"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MustParse(tc.from).Add(tc.days)
			if got.String() != tc.want {
				t.Errorf("Add(%d) from %s = %s, want %s", tc.days, tc.from, got, tc.want)
			}
		})
	}
}

func TestDate_AddMonth(t *testing.T) {
	testCases := []struct {
		name   string
		from   string
		months int
		want   string
	}{
		{"plain", "2024-01-15", 1, "2024-02-15"},
		{"three months", "2024-01-15", 3, "2024-04-15"},
		{"normalized overflow", "2024-01-31", 1, "2024-03-02"}, // leap year: Feb 29 + 2
		{"across year", "2024-11-15", 2, "2025-01-15"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MustParse(tc.from).AddMonth(tc.months)
			if got.String() != tc.want {
				t.Errorf("AddMonth(%d) from %s = %s, want %s", tc.months, tc.from, got, tc.want)
			}
		})
	}
}

func TestDate_Sub(t *testing.T) {
	a := MustParse("2025-03-01")
	b := MustParse("2024-01-01")
	if got := a.Sub(b); got != 425 {
		t.Errorf("Sub = %d, want 425", got)
	}
	if got := b.Sub(a); got != -425 {
		t.Errorf("Sub reversed = %d, want -425", got)
	}
	if got := a.Sub(a); got != 0 {
		t.Errorf("Sub self = %d, want 0", got)
	}
}

func TestDate_Weekday(t *testing.T) {
	if got := MustParse("2024-01-15").Weekday(); got != time.Monday {
		t.Errorf("2024-01-15 is a %s, want Monday", got)
	}
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-01-15", "2024-01-15", false},
		{"2024-1-5", "2024-01-05", false},
		{" 2024-01-15 ", "2024-01-15", false},
		{"2024-01-15T00:00:00Z", "2024-01-15", false},
		{"not-a-date", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected an error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParse("2024-06-01")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
