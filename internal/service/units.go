package service

import (
	"strings"
)

// Canonical quantity-unit keys. UnitWhole is the count-based unit that needs
// a per-food grams-per-item weight instead of a fixed factor.
const (
	UnitGram    = "g"
	UnitOunce   = "oz"
	UnitWhole   = "whole"
	UnitServing = "serving"
)

// staticGramsPerUnit holds the fixed grams-per-unit factors. Units listed
// here resolve immediately and never consult the learned weight cache.
var staticGramsPerUnit = map[string]float64{
	"g":       1,
	"kg":      1000,
	"oz":      28.349523125,
	"floz":    29.5735295625,
	"cup":     236.5882365,
	"tbsp":    14.78676478125,
	"tsp":     4.92892159375,
	"lb":      453.59237,
	"ml":      1,
	"l":       1000,
	"serving": 100,
	"piece":   30,
	"clove":   5,
	"handful": 30,
	"stick":   113,
	"can":     400,
	"package": 250,
	"bag":     100,
}

// unitAliases maps spelling variants, plurals, and abbreviations to
// canonical unit keys.
var unitAliases = map[string]string{
	"g":            "g",
	"gram":         "g",
	"grams":        "g",
	"gm":           "g",
	"gms":          "g",
	"kg":           "kg",
	"kgs":          "kg",
	"kilogram":     "kg",
	"kilograms":    "kg",
	"oz":           "oz",
	"oz.":          "oz",
	"ounce":        "oz",
	"ounces":       "oz",
	"floz":         "floz",
	"fl oz":        "floz",
	"fl-oz":        "floz",
	"fl. oz.":      "floz",
	"fluid ounce":  "floz",
	"fluid ounces": "floz",
	"cup":          "cup",
	"cups":         "cup",
	"c":            "cup",
	"tbsp":         "tbsp",
	"tbsp.":        "tbsp",
	"tbs":          "tbsp",
	"tablespoon":   "tbsp",
	"tablespoons":  "tbsp",
	"tsp":          "tsp",
	"tsp.":         "tsp",
	"teaspoon":     "tsp",
	"teaspoons":    "tsp",
	"lb":           "lb",
	"lbs":          "lb",
	"pound":        "lb",
	"pounds":       "lb",
	"ml":           "ml",
	"milliliter":   "ml",
	"milliliters":  "ml",
	"millilitre":   "ml",
	"millilitres":  "ml",
	"l":            "l",
	"liter":        "l",
	"liters":       "l",
	"litre":        "l",
	"litres":       "l",
	"whole":        "whole",
	"item":         "whole",
	"items":        "whole",
	"each":         "whole",
	"count":        "whole",
	"unit":         "whole",
	"units":        "whole",
	"piece":        "piece",
	"pieces":       "piece",
	"pc":           "piece",
	"pcs":          "piece",
	"serving":      "serving",
	"servings":     "serving",
	"clove":        "clove",
	"cloves":       "clove",
	"handful":      "handful",
	"handfuls":     "handful",
	"stick":        "stick",
	"sticks":       "stick",
	"can":          "can",
	"cans":         "can",
	"package":      "package",
	"packages":     "package",
	"pkg":          "package",
	"bag":          "bag",
	"bags":         "bag",
}

// NormalizeUnit maps a free-form unit string to a canonical unit key. It is
// total: unknown inputs fall through to the first token, or the trimmed
// input itself, so downstream logic can apply its own can't-convert policy.
func NormalizeUnit(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return u
	}
	if key, ok := unitAliases[u]; ok {
		return key
	}
	tokens := splitUnitTokens(u)
	for _, tok := range tokens {
		if key, ok := unitAliases[tok]; ok {
			return key
		}
	}
	if len(tokens) > 0 {
		return tokens[0]
	}
	return u
}

// StaticGramsPerUnit returns the fixed grams-per-unit factor for a
// canonical unit key, if it has one.
func StaticGramsPerUnit(unitKey string) (float64, bool) {
	f, ok := staticGramsPerUnit[unitKey]
	return f, ok
}

// ConvertToGrams converts a quantity in a static unit to grams. The second
// return is false when the unit has no static factor.
func ConvertToGrams(quantity float64, unit string) (float64, bool) {
	f, ok := staticGramsPerUnit[NormalizeUnit(unit)]
	if !ok {
		return 0, false
	}
	return quantity * f, true
}

// GramsToUnit converts grams back into a static display unit. The second
// return is false when the unit has no static factor.
func GramsToUnit(grams float64, unit string) (float64, bool) {
	f, ok := staticGramsPerUnit[NormalizeUnit(unit)]
	if !ok || f == 0 {
		return 0, false
	}
	return grams / f, true
}

// splitUnitTokens breaks a compound unit string ("cups cooked") into
// letter runs so each token can be retried against the alias table.
func splitUnitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
}
