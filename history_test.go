package costbasis

import "testing"

func TestHistory(t *testing.T) {
	h := &History{}
	// appended out of order
	h.Append(MustParse("2024-01-12"), M(20, "USD"))
	h.Append(MustParse("2024-01-05"), M(10, "USD"))
	h.Append(MustParse("2024-01-19"), M(30, "USD"))

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}

	// exact hit
	if p, ok := h.Get(MustParse("2024-01-12")); !ok || !p.Equal(M(20, "USD")) {
		t.Errorf("Get(2024-01-12) = %s, %v", p, ok)
	}
	if _, ok := h.Get(MustParse("2024-01-13")); ok {
		t.Error("Get found a missing date")
	}

	// ValueAsOf falls back to the most recent close
	if p, ok := h.ValueAsOf(MustParse("2024-01-15")); !ok || !p.Equal(M(20, "USD")) {
		t.Errorf("ValueAsOf(2024-01-15) = %s, %v, want $20.00", p, ok)
	}
	if _, ok := h.ValueAsOf(MustParse("2024-01-01")); ok {
		t.Error("ValueAsOf found a price before the first point")
	}

	// latest point
	if on, p := h.Latest(); on.String() != "2024-01-19" || !p.Equal(M(30, "USD")) {
		t.Errorf("Latest = %s %s", on, p)
	}

	// re-appending a date overwrites its price
	h.Append(MustParse("2024-01-12"), M(21, "USD"))
	if h.Len() != 3 {
		t.Errorf("overwrite changed Len to %d", h.Len())
	}
	if p, _ := h.Get(MustParse("2024-01-12")); !p.Equal(M(21, "USD")) {
		t.Errorf("overwrite kept %s", p)
	}

	// chronological iteration
	var last Date
	for on := range h.Values() {
		if !last.IsZero() && !on.After(last) {
			t.Errorf("Values not chronological at %s", on)
		}
		last = on
	}
}

func TestHistory_Empty(t *testing.T) {
	h := &History{}
	if on, p := h.Latest(); !on.IsZero() || !p.IsZero() {
		t.Errorf("empty Latest = %s %s", on, p)
	}
	if _, ok := h.ValueAsOf(MustParse("2024-01-01")); ok {
		t.Error("empty history found a price")
	}
}
