package service_test

import (
	"math"
	"testing"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

func TestRDAForGender(t *testing.T) {
	t.Parallel()
	male, err := service.RDAForGender("male")
	if err != nil {
		t.Fatalf("male table: %v", err)
	}
	if male["potassium"] != 4700 {
		t.Fatalf("male potassium = %v, want 4700", male["potassium"])
	}
	female, err := service.RDAForGender("female")
	if err != nil {
		t.Fatalf("female table: %v", err)
	}
	if female["iron"] != 18 {
		t.Fatalf("female iron = %v, want 18", female["iron"])
	}
	// Empty defaults to male.
	def, err := service.RDAForGender("")
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	if def["protein"] != male["protein"] {
		t.Fatalf("empty gender must select the male table")
	}
	if _, err := service.RDAForGender("other"); err == nil {
		t.Fatalf("unknown gender must be rejected")
	}
}

func TestPercentOfRDA(t *testing.T) {
	t.Parallel()
	rda, _ := service.RDAForGender("male")
	totals := model.Totals{Nutrients: map[string]float64{"protein": 18}}

	pct := service.PercentOfRDA("protein", totals, rda)
	if pct == nil {
		t.Fatalf("protein percent must be defined")
	}
	if math.Abs(*pct-36) > 1e-9 {
		t.Fatalf("protein percent = %v, want 36", *pct)
	}
}

func TestPercentOfRDAAbsentTarget(t *testing.T) {
	t.Parallel()
	totals := model.Totals{Nutrients: map[string]float64{"protein": 18}}
	if pct := service.PercentOfRDA("protein", totals, model.RDATable{}); pct != nil {
		t.Fatalf("missing target must yield nil, got %v", *pct)
	}
	if pct := service.PercentOfRDA("protein", totals, model.RDATable{"protein": 0}); pct != nil {
		t.Fatalf("zero target must yield nil, got %v", *pct)
	}
}

func TestPercentOfRDAOmegaRatio(t *testing.T) {
	t.Parallel()
	rda, _ := service.RDAForGender("male")

	// Undetermined ratio: no percentage.
	totals := model.Totals{Nutrients: map[string]float64{}}
	if pct := service.PercentOfRDA(model.Omega36RatioKey, totals, rda); pct != nil {
		t.Fatalf("nil ratio must yield nil percent")
	}

	ratio := 0.33
	totals.Omega36Ratio = &ratio
	pct := service.PercentOfRDA(model.Omega36RatioKey, totals, rda)
	if pct == nil {
		t.Fatalf("set ratio must yield a percent")
	}
	if math.Abs(*pct-100) > 1e-9 {
		t.Fatalf("ratio at target = %v %%, want 100", *pct)
	}
}

func TestRDAStatus(t *testing.T) {
	t.Parallel()
	if got := service.RDAStatus(nil); got != "n/a" {
		t.Fatalf("nil percent status = %q, want n/a", got)
	}
	met := 100.0
	if got := service.RDAStatus(&met); got != "met" {
		t.Fatalf("100%% status = %q, want met", got)
	}
	low := 99.999
	if got := service.RDAStatus(&low); got != "deficient" {
		t.Fatalf("under-target status = %q, want deficient", got)
	}
}
