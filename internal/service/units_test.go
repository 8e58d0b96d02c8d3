package service_test

import (
	"math"
	"testing"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

func TestNormalizeUnitAliases(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Grams":        "g",
		"  OZ. ":       "oz",
		"cups":         "cup",
		"Tablespoons":  "tbsp",
		"fl oz":        "floz",
		"items":        "whole",
		"each":         "whole",
		"pcs":          "piece",
		"servings":     "serving",
		"cloves":       "clove",
		"cups cooked":  "cup",
		"large (50g)":  "g",
		"":             "",
		"whole medium": "whole",
	}
	for raw, want := range cases {
		if got := service.NormalizeUnit(raw); got != want {
			t.Fatalf("NormalizeUnit(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeUnitFallsThrough(t *testing.T) {
	t.Parallel()
	// Unknown inputs come back as the first token or the trimmed input.
	if got := service.NormalizeUnit("dollops galore"); got != "dollops" {
		t.Fatalf("NormalizeUnit fallback = %q, want first token", got)
	}
	if got := service.NormalizeUnit("???"); got != "???" {
		t.Fatalf("NormalizeUnit(\"???\") = %q, want input back", got)
	}
}

func TestConvertToGramsStaticUnits(t *testing.T) {
	t.Parallel()
	cases := []struct {
		quantity float64
		unit     string
		want     float64
	}{
		{1, "oz", 28.349523125},
		{2, "cups", 473.176473},
		{1, "lb", 453.59237},
		{3, "tsp", 14.78676478125},
		{1, "serving", 100},
		{2, "cloves", 10},
		{500, "g", 500},
		{1.5, "kg", 1500},
	}
	for _, c := range cases {
		got, ok := service.ConvertToGrams(c.quantity, c.unit)
		if !ok {
			t.Fatalf("ConvertToGrams(%v, %q) not convertible", c.quantity, c.unit)
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("ConvertToGrams(%v, %q) = %v, want %v", c.quantity, c.unit, got, c.want)
		}
	}
}

func TestConvertToGramsUnknownUnit(t *testing.T) {
	t.Parallel()
	if _, ok := service.ConvertToGrams(1, "whole"); ok {
		t.Fatalf("whole must not have a static factor")
	}
	if _, ok := service.ConvertToGrams(1, "dollop"); ok {
		t.Fatalf("unknown unit must not be convertible")
	}
}

func TestUnitRoundTrip(t *testing.T) {
	t.Parallel()
	for _, unit := range []string{"oz", "cup", "tbsp", "tsp", "lb", "ml", "serving"} {
		for _, qty := range []float64{0.25, 1, 3.5, 100} {
			grams, ok := service.ConvertToGrams(qty, unit)
			if !ok {
				t.Fatalf("ConvertToGrams(%v, %q) not convertible", qty, unit)
			}
			back, ok := service.GramsToUnit(grams, unit)
			if !ok {
				t.Fatalf("GramsToUnit(%v, %q) not convertible", grams, unit)
			}
			if math.Abs(back-qty) > 1e-9 {
				t.Fatalf("round trip %v %s drifted to %v", qty, unit, back)
			}
		}
	}
}
