package service_test

import (
	"math"
	"testing"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

func TestConvertToCanonicalMassChain(t *testing.T) {
	t.Parallel()
	cases := []struct {
		key    string
		amount float64
		unit   string
		want   float64
	}{
		{"protein", 9000, "mg", 9},
		{"protein", 9, "g", 9},
		{"zinc", 0.003, "g", 3},
		{"zinc", 3000, "µg", 3},
		{"b12", 0.0024, "mg", 2.4},
		{"b12", 2.4, "mcg", 2.4},
		{"vitaminK", 0.12, "mg", 120},
		{"magnesium", 400, "mg", 400},
	}
	for _, c := range cases {
		got := service.ConvertToCanonical(c.key, c.amount, c.unit)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("ConvertToCanonical(%q, %v, %q) = %v, want %v", c.key, c.amount, c.unit, got, c.want)
		}
	}
}

func TestConvertToCanonicalIU(t *testing.T) {
	t.Parallel()
	if got := service.ConvertToCanonical("vitaminD", 400, "IU"); math.Abs(got-10) > 1e-9 {
		t.Fatalf("400 IU vitamin D = %v µg, want 10", got)
	}
	if got := service.ConvertToCanonical("vitaminA", 1000, "iu"); math.Abs(got-300) > 1e-9 {
		t.Fatalf("1000 IU vitamin A = %v µg, want 300", got)
	}
	if got := service.ConvertToCanonical("vitaminE", 30, "IU"); math.Abs(got-20.1) > 1e-9 {
		t.Fatalf("30 IU vitamin E = %v mg, want 20.1", got)
	}
}

func TestConvertToCanonicalIUFallbackIsLowConfidence(t *testing.T) {
	t.Parallel()
	// No specific IU factor exists for these; the class fallback applies.
	got, low := service.ConvertToCanonicalChecked("b12", 10, "IU")
	if !low {
		t.Fatalf("generic µg-class IU conversion must flag low confidence")
	}
	if math.Abs(got-3) > 1e-9 {
		t.Fatalf("10 IU via µg fallback = %v, want 3", got)
	}
	got, low = service.ConvertToCanonicalChecked("iron", 10, "IU")
	if !low {
		t.Fatalf("generic mg-class IU conversion must flag low confidence")
	}
	if math.Abs(got-6.7) > 1e-9 {
		t.Fatalf("10 IU via mg fallback = %v, want 6.7", got)
	}
}

func TestConvertToCanonicalCalories(t *testing.T) {
	t.Parallel()
	if got := service.ConvertToCanonical("calories", 232000, "cal"); math.Abs(got-232) > 1e-9 {
		t.Fatalf("232000 cal = %v kcal, want 232", got)
	}
	if got := service.ConvertToCanonical("calories", 232, "kcal"); got != 232 {
		t.Fatalf("kcal passthrough = %v, want 232", got)
	}
}

func TestConvertToCanonicalQualifierSuffixes(t *testing.T) {
	t.Parallel()
	if got := service.ConvertToCanonical("vitaminA", 900, "µg RAE"); got != 900 {
		t.Fatalf("µg RAE = %v, want 900", got)
	}
	if got := service.ConvertToCanonical("folate", 400, "mcg DFE"); got != 400 {
		t.Fatalf("mcg DFE = %v, want 400", got)
	}
	if got := service.ConvertToCanonical("vitaminE", 15, "mg ATE"); got != 15 {
		t.Fatalf("mg ATE = %v, want 15", got)
	}
}

func TestConvertToCanonicalUnknownInputsPassThrough(t *testing.T) {
	t.Parallel()
	// Unknown nutrient key or unparseable unit: value returned unchanged.
	if got := service.ConvertToCanonical("mystery", 42, "g"); got != 42 {
		t.Fatalf("unknown nutrient = %v, want 42", got)
	}
	if got := service.ConvertToCanonical("protein", 42, "smidgens"); got != 42 {
		t.Fatalf("unknown unit = %v, want 42", got)
	}
	if got := service.ConvertToCanonical("protein", 42, ""); got != 42 {
		t.Fatalf("empty unit = %v, want 42", got)
	}
}
