package service

import (
	"math"
	"regexp"
	"strings"

	"github.com/captain-stacks/nutrition-gpt/internal/logger"
	"github.com/captain-stacks/nutrition-gpt/internal/model"
)

// seedFoods holds the built-in catalog, all tabulated per 100 g. Values
// carried over from the app's original seed table.
var seedFoods = map[string]map[string]float64{
	"Lentils": {
		"calories": 116, "protein": 9, "fat": 0.4, "carbs": 20, "omega3": 0.1,
		"omega6": 0.49, "zinc": 3, "b12": 0, "magnesium": 36, "vitaminE": 0.5,
		"vitaminK": 1.7, "vitaminA": 8, "monounsaturated": 0.1, "selenium": 2,
		"iron": 3.3, "vitaminD": 0, "b1": 0.3, "choline": 36, "calcium": 19,
		"potassium": 369, "iodine": 0, "vitaminC": 1.5, "folate": 181,
	},
	"Potato": {
		"calories": 77, "protein": 2, "fat": 0.1, "carbs": 17, "omega3": 0,
		"omega6": 0.05, "zinc": 0.3, "b12": 0, "magnesium": 23, "vitaminE": 0.01,
		"vitaminK": 2, "vitaminA": 2, "monounsaturated": 0.03, "selenium": 0.7,
		"iron": 0.8, "vitaminD": 0, "b1": 0.08, "choline": 8, "calcium": 12,
		"potassium": 429, "iodine": 0, "vitaminC": 19.7, "folate": 15,
	},
	"Carrot": {
		"calories": 41, "protein": 0.9, "fat": 0.2, "carbs": 10, "omega3": 0.02,
		"omega6": 0.05, "zinc": 0.2, "b12": 0, "magnesium": 12, "vitaminE": 0.66,
		"vitaminK": 13.2, "vitaminA": 835, "monounsaturated": 0.01, "selenium": 0.1,
		"iron": 0.6, "vitaminD": 0, "b1": 0.07, "choline": 8, "calcium": 33,
		"potassium": 320, "iodine": 0, "vitaminC": 5.9, "folate": 19,
	},
	"Broccoli": {
		"calories": 55, "protein": 3.7, "fat": 0.6, "carbs": 11, "omega3": 0.1,
		"omega6": 0.05, "zinc": 0.4, "b12": 0, "magnesium": 21, "vitaminE": 0.8,
		"vitaminK": 101.6, "vitaminA": 31, "monounsaturated": 0.05, "selenium": 2.5,
		"iron": 0.7, "vitaminD": 0, "b1": 0.07, "choline": 40, "calcium": 47,
		"potassium": 316, "iodine": 0, "vitaminC": 89.2, "folate": 63,
	},
	"Hemp Hearts": {
		"calories": 567, "protein": 31.6, "fat": 48.8, "carbs": 8.7, "omega3": 9.3,
		"omega6": 28, "zinc": 9.9, "b12": 0, "magnesium": 700, "vitaminE": 0.8,
		"vitaminK": 0, "vitaminA": 0, "monounsaturated": 7, "selenium": 7.6,
		"iron": 7.9, "vitaminD": 0, "b1": 0.9, "choline": 110, "calcium": 70,
		"potassium": 1200, "iodine": 0, "vitaminC": 1.5, "folate": 110,
	},
	"Nutritional Yeast": {
		"calories": 325, "protein": 50, "fat": 4, "carbs": 34, "omega3": 0,
		"omega6": 0, "zinc": 4.6, "b12": 17.6, "magnesium": 130, "vitaminE": 0.5,
		"vitaminK": 0, "vitaminA": 0, "monounsaturated": 1, "selenium": 5,
		"iron": 2.7, "vitaminD": 0, "b1": 11.2, "choline": 57, "calcium": 23,
		"potassium": 1040, "iodine": 0, "vitaminC": 0, "folate": 1960,
	},
	"Eggs": {
		"calories": 155, "protein": 13, "fat": 11, "carbs": 1.1, "omega3": 0.05,
		"omega6": 1.5, "zinc": 1.3, "b12": 1.1, "magnesium": 10, "vitaminE": 1.05,
		"vitaminK": 0.3, "vitaminA": 140, "monounsaturated": 4.1, "selenium": 30,
		"iron": 1.2, "vitaminD": 2, "b1": 0.04, "choline": 147, "calcium": 50,
		"potassium": 126, "iodine": 24, "vitaminC": 0, "folate": 47,
	},
	"Cod Liver Oil": {
		"calories": 902, "protein": 0, "fat": 100, "carbs": 0, "omega3": 30,
		"omega6": 5, "zinc": 0, "b12": 10, "magnesium": 0, "vitaminE": 10,
		"vitaminK": 0, "vitaminA": 3000, "monounsaturated": 40, "selenium": 0,
		"iron": 0, "vitaminD": 250, "b1": 0, "choline": 0, "calcium": 0,
		"potassium": 0, "iodine": 0, "vitaminC": 0, "folate": 0,
	},
}

// SeedFoodDatabase returns a fresh copy of the built-in catalog.
func SeedFoodDatabase() model.FoodDatabase {
	db := model.FoodDatabase{}
	for name, nutrients := range seedFoods {
		copied := make(map[string]float64, len(nutrients))
		for k, v := range nutrients {
			copied[k] = v
		}
		db[name] = model.NutrientProfile{
			Nutrients:   copied,
			ServingSize: model.DefaultServingSize(),
			Source:      "seed",
		}
	}
	return db
}

// usdaNutrientNames translates FoodData Central nutrient vocabulary to this
// schema's keys. External names not listed here are silently dropped.
var usdaNutrientNames = map[string]string{
	"energy":                             "calories",
	"protein":                            "protein",
	"total lipid (fat)":                  "fat",
	"carbohydrate, by difference":        "carbs",
	"pufa 18:3 n-3 c,c,c (ala)":          "omega3",
	"fatty acids, total omega-3":         "omega3",
	"pufa 18:2 n-6 c,c (la)":             "omega6",
	"fatty acids, total omega-6":         "omega6",
	"fatty acids, total monounsaturated": "monounsaturated",
	"zinc, zn":                           "zinc",
	"vitamin b-12":                       "b12",
	"magnesium, mg":                      "magnesium",
	"vitamin e (alpha-tocopherol)":       "vitaminE",
	"vitamin k (phylloquinone)":          "vitaminK",
	"vitamin a, rae":                     "vitaminA",
	"selenium, se":                       "selenium",
	"iron, fe":                           "iron",
	"vitamin d (d2 + d3)":                "vitaminD",
	"thiamin":                            "b1",
	"choline, total":                     "choline",
	"calcium, ca":                        "calcium",
	"potassium, k":                       "potassium",
	"iodine, i":                          "iodine",
	"vitamin c, total ascorbic acid":     "vitaminC",
	"folate, dfe":                        "folate",
	"folate, total":                      "folate",
}

// ExternalNutrient is one (name, value, unit) triple from an external
// vocabulary, before translation.
type ExternalNutrient struct {
	Name  string
	Value float64
	Unit  string
}

// ProfileFromExternal maps external nutrient triples into a NutrientProfile,
// translating names, converting every value to the nutrient's canonical
// unit, and dropping unrecognized names. Non-finite and negative values are
// discarded rather than committed.
func ProfileFromExternal(nutrients []ExternalNutrient, serving model.ServingSize, source string) model.NutrientProfile {
	out := map[string]float64{}
	for _, n := range nutrients {
		key, ok := usdaNutrientNames[strings.ToLower(strings.TrimSpace(n.Name))]
		if !ok {
			continue
		}
		if n.Value < 0 || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
			continue
		}
		converted := ConvertToCanonical(key, n.Value, n.Unit)
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = converted
	}
	if serving.Grams <= 0 {
		serving = model.DefaultServingSize()
	}
	return model.NutrientProfile{Nutrients: out, ServingSize: serving, Source: source}
}

// ProfileFromEstimate builds a profile from model-estimated {amount, unit}
// pairs. Unknown nutrient keys and negative or non-finite amounts are
// dropped; generic IU fallbacks are logged as low-confidence.
func ProfileFromEstimate(nutrients map[string]model.ParsedQuantity, serving model.ServingSize, source string) model.NutrientProfile {
	out := map[string]float64{}
	for key, qty := range nutrients {
		if _, known := CanonicalNutrientUnits[key]; !known {
			continue
		}
		if qty.Amount < 0 || math.IsNaN(qty.Amount) || math.IsInf(qty.Amount, 0) {
			continue
		}
		converted, lowConfidence := ConvertToCanonicalChecked(key, qty.Amount, qty.Unit)
		if lowConfidence {
			logger.Warn("generic IU conversion applied", "nutrient", key, "unit", qty.Unit)
		}
		out[key] = converted
	}
	if serving.Grams <= 0 {
		serving = model.DefaultServingSize()
	}
	return model.NutrientProfile{Nutrients: out, ServingSize: serving, Source: source}
}

// wholeServingPattern spots serving descriptors that really mean one whole
// item ("1 large egg"). Best-effort by design.
var wholeServingPattern = regexp.MustCompile(`(?i)\b(egg|apple|banana|potato|orange|avocado|onion|carrot)s?\b`)

// ServingImpliesWhole reports whether a serving-unit descriptor looks like
// a count of whole items rather than a measured volume or mass.
func ServingImpliesWhole(amountUnit string) bool {
	unit := NormalizeUnit(amountUnit)
	if _, static := StaticGramsPerUnit(unit); static {
		return false
	}
	if unit == UnitWhole {
		return true
	}
	return wholeServingPattern.MatchString(amountUnit)
}
