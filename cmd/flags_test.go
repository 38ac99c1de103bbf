package cmd

import (
	"testing"
	"time"

	"github.com/openfolio/costbasis"
)

func TestParseAllocations(t *testing.T) {
	allocations, err := parseAllocations("VTI=60, BND=40")
	if err != nil {
		t.Fatal(err)
	}
	if len(allocations) != 2 {
		t.Fatalf("got %d allocations, want 2", len(allocations))
	}
	if allocations[0].Symbol != "VTI" || !allocations[0].Weight.Equal(60) {
		t.Errorf("first = %+v", allocations[0])
	}
	if allocations[1].Symbol != "BND" || !allocations[1].Weight.Equal(40) {
		t.Errorf("second = %+v", allocations[1])
	}

	if _, err := parseAllocations("VTI:60"); err == nil {
		t.Error("accepted a malformed pair")
	}
	if _, err := parseAllocations("VTI=sixty"); err == nil {
		t.Error("accepted a non-numeric weight")
	}
}

func TestParsePreference(t *testing.T) {
	pref, err := parsePreference("friday", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !pref.HasWeekday || pref.Weekday != time.Friday {
		t.Errorf("pref = %+v", pref)
	}

	pref, err = parsePreference("", 15)
	if err != nil {
		t.Fatal(err)
	}
	if pref.DayOfMonth != 15 || pref.HasWeekday {
		t.Errorf("pref = %+v", pref)
	}

	if pref, err = parsePreference("", 0); err != nil || !pref.IsZero() {
		t.Errorf("empty pref = %+v, %v", pref, err)
	}
	if _, err := parsePreference("friday", 15); err == nil {
		t.Error("accepted both -weekday and -day")
	}
	if _, err := parsePreference("someday", 0); err == nil {
		t.Error("accepted an unknown weekday")
	}
}

func TestParseAmount(t *testing.T) {
	m, err := parseAmount("100.10", "USD")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(costbasis.M(100.10, "USD")) {
		t.Errorf("parseAmount = %s", m)
	}
	if _, err := parseAmount("a lot", "USD"); err == nil {
		t.Error("accepted a non-numeric amount")
	}
}
