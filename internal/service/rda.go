package service

import (
	"fmt"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// rdaMale mirrors the published adult-male daily targets the app has always
// shipped with. omega3_6_ratio is a target ratio, not a mass: 0.33 means
// one gram of omega-3 per roughly three grams of omega-6.
var rdaMale = model.RDATable{
	"calories":        2000,
	"protein":         50,
	"fat":             70,
	"carbs":           310,
	"omega3":          1.6,
	"omega6":          17,
	"zinc":            11,
	"b12":             2.4,
	"magnesium":       400,
	"vitaminE":        15,
	"vitaminK":        120,
	"vitaminA":        900,
	"monounsaturated": 20,
	"selenium":        55,
	"iron":            8,
	"vitaminD":        20,
	"b1":              1.2,
	"choline":         550,
	"calcium":         1000,
	"potassium":       4700,
	"iodine":          150,
	"vitaminC":        90,
	"folate":          400,
	"omega3_6_ratio":  0.33,
}

var rdaFemale = model.RDATable{
	"calories":        2000,
	"protein":         46,
	"fat":             70,
	"carbs":           310,
	"omega3":          1.1,
	"omega6":          12,
	"zinc":            8,
	"b12":             2.4,
	"magnesium":       310,
	"vitaminE":        15,
	"vitaminK":        90,
	"vitaminA":        700,
	"monounsaturated": 20,
	"selenium":        55,
	"iron":            18,
	"vitaminD":        20,
	"b1":              1.1,
	"choline":         425,
	"calcium":         1000,
	"potassium":       2600,
	"iodine":          150,
	"vitaminC":        75,
	"folate":          400,
	"omega3_6_ratio":  0.33,
}

// RDAForGender selects the table for a gender string.
func RDAForGender(gender string) (model.RDATable, error) {
	switch gender {
	case GenderMale, "":
		return rdaMale, nil
	case GenderFemale:
		return rdaFemale, nil
	default:
		return nil, fmt.Errorf("unknown RDA gender %q (use male or female)", gender)
	}
}

// PercentOfRDA returns the percentage of the daily target reached for a
// nutrient key, or nil when the table defines no (or a zero) target, or
// when the omega ratio is undetermined.
func PercentOfRDA(key string, totals model.Totals, rda model.RDATable) *float64 {
	target, ok := rda[key]
	if !ok || target == 0 {
		return nil
	}
	var value float64
	if key == model.Omega36RatioKey {
		if totals.Omega36Ratio == nil {
			return nil
		}
		value = *totals.Omega36Ratio
	} else {
		value = totals.Nutrients[key]
	}
	pct := value / target * 100
	return &pct
}

// RDAStatus is the display convention for a percentage: at or above 100 %
// the target is met, below it the nutrient is deficient.
func RDAStatus(pct *float64) string {
	if pct == nil {
		return "n/a"
	}
	if *pct >= 100 {
		return "met"
	}
	return "deficient"
}
