package species

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func testDefs() []AttributeDefinition {
	return []AttributeDefinition{
		{ID: "attr-weight", Name: "peso", Type: AttributeNumber},
		{ID: "attr-breed", Name: "raza", Type: AttributeSelect, Options: []string{"angus", "holstein"}, Required: true},
		{ID: "attr-tag", Name: "chip", Type: AttributeText},
		{ID: "attr-vacc", Name: "vacunado", Type: AttributeBoolean},
	}
}

func TestValidateAttributes_OK(t *testing.T) {
	values := map[string]AttributeValue{
		"attr-weight": {Type: AttributeNumber, Number: 420.5},
		"attr-breed":  {Type: AttributeSelect, Text: "angus"},
	}
	if err := ValidateAttributes(testDefs(), values); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAttributes_UnknownKey(t *testing.T) {
	values := map[string]AttributeValue{
		"attr-breed": {Type: AttributeSelect, Text: "angus"},
		"attr-nope":  {Type: AttributeText, Text: "x"},
	}
	err := ValidateAttributes(testDefs(), values)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestValidateAttributes_RequiredMissing(t *testing.T) {
	values := map[string]AttributeValue{
		"attr-weight": {Type: AttributeNumber, Number: 400},
	}
	err := ValidateAttributes(testDefs(), values)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing required, got %v", err)
	}
}

func TestValidateAttributes_TypeMismatch(t *testing.T) {
	values := map[string]AttributeValue{
		"attr-breed":  {Type: AttributeSelect, Text: "angus"},
		"attr-weight": {Type: AttributeText, Text: "mucho"},
	}
	err := ValidateAttributes(testDefs(), values)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for type mismatch, got %v", err)
	}
}

func TestValidateAttributes_SelectOutOfOptions(t *testing.T) {
	values := map[string]AttributeValue{
		"attr-breed": {Type: AttributeSelect, Text: "jersey"},
	}
	err := ValidateAttributes(testDefs(), values)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad option, got %v", err)
	}
}

func TestAttributeValue_JSONRoundTrip(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	cases := []AttributeValue{
		{Type: AttributeText, Text: "arete rojo"},
		{Type: AttributeNumber, Number: 12.5},
		{Type: AttributeDate, Date: &d},
		{Type: AttributeBoolean, Bool: true},
		{Type: AttributeSelect, Text: "angus"},
	}

	for _, v := range cases {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("%s: marshal: %v", v.Type, err)
		}
		var back AttributeValue
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("%s: unmarshal: %v", v.Type, err)
		}
		if back.Type != v.Type || back.Text != v.Text || back.Number != v.Number || back.Bool != v.Bool {
			t.Fatalf("%s: round trip mismatch: %+v vs %+v", v.Type, v, back)
		}
		if (v.Date == nil) != (back.Date == nil) {
			t.Fatalf("%s: date presence mismatch", v.Type)
		}
		if v.Date != nil && !back.Date.Equal(*v.Date) {
			t.Fatalf("%s: date mismatch: %v vs %v", v.Type, back.Date, v.Date)
		}
	}
}

func TestAttributeValue_DateWireFormat(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	b, err := json.Marshal(AttributeValue{Type: AttributeDate, Date: &d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"date","value":"2024-03-05"}`
	if string(b) != want {
		t.Fatalf("wire format: got %s want %s", b, want)
	}
}

func TestAttributeValue_RejectsUnknownType(t *testing.T) {
	var v AttributeValue
	if err := json.Unmarshal([]byte(`{"type":"color","value":"red"}`), &v); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
