package costbasis

import (
	"testing"

	"github.com/shopspring/decimal"
)

// The writer must keep the fields in append order, so the JSONL files
// stay diffable line by line.
func TestJSONObjectWriter_Order(t *testing.T) {
	var w jsonObjectWriter
	w.Append("b", 1)
	w.Append("a", 2)
	w.Optional("skipped", "")
	w.Optional("kept", "x")
	data, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"b":1,"a":2,"kept":"x"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestJSONObjectWriter_Embed(t *testing.T) {
	var w jsonObjectWriter
	w.Append("record", "lot")
	w.EmbedFrom(map[string]int{"n": 7})
	data, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"record":"lot","n":7}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

// Amounts are persisted with all their digits, not rounded to the
// currency's minor unit.
func TestMoney_MarshalJSON(t *testing.T) {
	m := M(decimal.RequireFromString("318.46815"), "USD")
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"currency":"USD","amount":318.46815}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
