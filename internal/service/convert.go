package service

import (
	"strings"
)

// Canonical nutrient units. Each nutrient is always stored and aggregated
// in exactly one of these.
const (
	NutrientUnitG    = "g"
	NutrientUnitMg   = "mg"
	NutrientUnitMcg  = "µg"
	NutrientUnitKcal = "kcal"
)

// CanonicalNutrientUnits maps nutrient key to its storage unit. Mirrors the
// display table: macros in grams, trace minerals and most vitamins in mg or
// µg, energy in kcal.
var CanonicalNutrientUnits = map[string]string{
	"calories":        NutrientUnitKcal,
	"protein":         NutrientUnitG,
	"fat":             NutrientUnitG,
	"carbs":           NutrientUnitG,
	"omega3":          NutrientUnitG,
	"omega6":          NutrientUnitG,
	"zinc":            NutrientUnitMg,
	"b12":             NutrientUnitMcg,
	"magnesium":       NutrientUnitMg,
	"vitaminE":        NutrientUnitMg,
	"vitaminK":        NutrientUnitMcg,
	"vitaminA":        NutrientUnitMcg,
	"monounsaturated": NutrientUnitG,
	"selenium":        NutrientUnitMcg,
	"iron":            NutrientUnitMg,
	"vitaminD":        NutrientUnitMcg,
	"b1":              NutrientUnitMg,
	"choline":         NutrientUnitMg,
	"calcium":         NutrientUnitMg,
	"potassium":       NutrientUnitMg,
	"iodine":          NutrientUnitMcg,
	"vitaminC":        NutrientUnitMg,
	"folate":          NutrientUnitMcg,
}

// iuFactors converts IU to the nutrient's canonical unit for nutrients with
// a defined IU equivalence.
var iuFactors = map[string]float64{
	"vitaminD": 0.025, // IU -> µg
	"vitaminA": 0.3,   // IU -> µg RAE
	"vitaminE": 0.67,  // IU -> mg alpha-tocopherol
}

// Generic IU fallbacks by canonical unit class, used when the nutrient has
// no specific factor. Conversions through these are low-confidence.
const (
	iuFallbackMcg = 0.3
	iuFallbackMg  = 0.67
)

// qualifierSuffixes denote a measurement basis (RAE, DFE, ...) rather than
// a different unit; they are stripped before unit matching.
var qualifierSuffixes = []string{"rae", "dfe", "ate", "te", "equivalents", "equivalent", "eq"}

var nutrientUnitAliases = map[string]string{
	"g":            "g",
	"gram":         "g",
	"grams":        "g",
	"gm":           "g",
	"mg":           "mg",
	"milligram":    "mg",
	"milligrams":   "mg",
	"µg":           "µg",
	"ug":           "µg",
	"mcg":          "µg",
	"microgram":    "µg",
	"micrograms":   "µg",
	"kg":           "kg",
	"kcal":         "kcal",
	"kcals":        "kcal",
	"kilocalorie":  "kcal",
	"kilocalories": "kcal",
	"cal":          "cal",
	"cals":         "cal",
	"calorie":      "cal",
	"calories":     "cal",
	"iu":           "IU",
}

// milligrams per unit, the intermediate representation for mass conversion.
var massToMg = map[string]float64{
	"g":  1000,
	"mg": 1,
	"µg": 0.001,
	"kg": 1000000,
}

// ConvertToCanonical converts a nutrient amount from an arbitrary source
// unit into the nutrient's canonical unit. It is pure and never fails: an
// unrecognizable source unit returns the amount unchanged, since external
// free-text sources routinely carry approximate or unlabeled data.
func ConvertToCanonical(nutrientKey string, amount float64, sourceUnit string) float64 {
	v, _ := ConvertToCanonicalChecked(nutrientKey, amount, sourceUnit)
	return v
}

// ConvertToCanonicalChecked is ConvertToCanonical plus a low-confidence
// flag, set when a generic IU fallback factor had to be applied.
func ConvertToCanonicalChecked(nutrientKey string, amount float64, sourceUnit string) (float64, bool) {
	target, ok := CanonicalNutrientUnits[nutrientKey]
	if !ok {
		return amount, false
	}
	src, ok := normalizeNutrientUnit(sourceUnit)
	if !ok {
		return amount, false
	}

	if nutrientKey == "calories" {
		switch src {
		case "cal":
			return amount / 1000, false
		default:
			// kcal, or a mislabeled unit assumed to already be kcal.
			return amount, false
		}
	}

	if src == "IU" {
		if f, ok := iuFactors[nutrientKey]; ok {
			return amount * f, false
		}
		switch target {
		case NutrientUnitMg:
			return amount * iuFallbackMg, true
		default:
			return amount * iuFallbackMcg, true
		}
	}

	mgPer, ok := massToMg[src]
	if !ok {
		return amount, false
	}
	mg := amount * mgPer
	switch target {
	case NutrientUnitG:
		return mg / 1000, false
	case NutrientUnitMcg:
		return mg * 1000, false
	default:
		return mg, false
	}
}

func normalizeNutrientUnit(raw string) (string, bool) {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return "", false
	}
	if key, ok := nutrientUnitAliases[u]; ok {
		return key, true
	}
	// Strip basis qualifiers like "µg RAE" or "mg ATE" and retry.
	tokens := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(u))
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isQualifier(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	for _, tok := range kept {
		if key, ok := nutrientUnitAliases[tok]; ok {
			return key, true
		}
	}
	return "", false
}

func isQualifier(tok string) bool {
	for _, q := range qualifierSuffixes {
		if tok == q {
			return true
		}
	}
	return false
}
