package service_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

func TestParseQuantityNumbers(t *testing.T) {
	t.Parallel()
	if got := service.ParseQuantity(30.5); got.Amount != 30.5 || got.Unit != "" {
		t.Fatalf("float input parsed as %+v", got)
	}
	if got := service.ParseQuantity(30); got.Amount != 30 {
		t.Fatalf("int input parsed as %+v", got)
	}
	if got := service.ParseQuantity(json.Number("2.4")); got.Amount != 2.4 {
		t.Fatalf("json.Number input parsed as %+v", got)
	}
}

func TestParseQuantityStrings(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in     string
		amount float64
		unit   string
	}{
		{"30", 30, ""},
		{"30g", 30, "g"},
		{"30.5 g", 30.5, "g"},
		{"1/2 cup", 0.5, "cup"},
		{"  2 tbsp ", 2, "tbsp"},
		{"mg", 0, "mg"},
		{"", 0, ""},
	}
	for _, c := range cases {
		got := service.ParseQuantity(c.in)
		if math.Abs(got.Amount-c.amount) > 1e-9 || got.Unit != c.unit {
			t.Fatalf("ParseQuantity(%q) = %+v, want {%v %q}", c.in, got, c.amount, c.unit)
		}
	}
}

func TestParseQuantityObjects(t *testing.T) {
	t.Parallel()
	got := service.ParseQuantity(map[string]any{"amount": 2.4, "unit": "mcg"})
	if got.Amount != 2.4 || got.Unit != "mcg" {
		t.Fatalf("object input parsed as %+v", got)
	}
	// "value" and "quantity" are accepted spellings of the amount field.
	got = service.ParseQuantity(map[string]any{"value": "15 mg"})
	if got.Amount != 15 || got.Unit != "mg" {
		t.Fatalf("nested string amount parsed as %+v", got)
	}
	got = service.ParseQuantity(map[string]any{"quantity": 3, "unit": "g"})
	if got.Amount != 3 || got.Unit != "g" {
		t.Fatalf("quantity spelling parsed as %+v", got)
	}
}

func TestParseQuantityGarbageIsTotal(t *testing.T) {
	t.Parallel()
	for _, in := range []any{nil, true, []any{1, 2}, map[string]any{"nope": 1}, math.NaN(), math.Inf(1)} {
		got := service.ParseQuantity(in)
		if math.IsNaN(got.Amount) || math.IsInf(got.Amount, 0) {
			t.Fatalf("ParseQuantity(%v) produced non-finite amount", in)
		}
	}
	if got := service.ParseQuantity("1/0 cup"); got.Amount != 0 {
		t.Fatalf("zero denominator parsed as %+v", got)
	}
}
