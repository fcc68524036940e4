package types

import (
	"encoding/json"
	"testing"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	type payload struct {
		Title  Optional[string] `json:"title"`
		Label  Optional[string] `json:"label"`
		Weight Optional[int]    `json:"weight"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"title":"Nightfall","label":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !p.Title.IsSet() || p.Title.IsNull() {
		t.Fatalf("title should be present with a value")
	}
	if v, ok := p.Title.Value(); !ok || v != "Nightfall" {
		t.Fatalf("unexpected title %q (%v)", v, ok)
	}

	if !p.Label.IsSet() || !p.Label.IsNull() {
		t.Fatalf("label should be an explicit null")
	}

	if p.Weight.IsSet() {
		t.Fatalf("weight was absent and must not report set")
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var o Optional[int]
	if err := json.Unmarshal([]byte(`"not a number"`), &o); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestOptionalMarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(Some("mp3"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"mp3"` {
		t.Fatalf("unexpected output %s", out)
	}

	out, err = json.Marshal(Null[string]())
	if err != nil {
		t.Fatalf("marshal null: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("expected null, got %s", out)
	}
}
