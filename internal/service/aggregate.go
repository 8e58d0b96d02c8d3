package service

import (
	"github.com/captain-stacks/nutrition-gpt/internal/model"
)

// ComputeTotals sums multiplier-scaled nutrient amounts across the current
// list. An entry whose food is missing from the database contributes zero
// for every nutrient; a profile missing a nutrient key contributes zero for
// that key. Pure and idempotent.
func ComputeTotals(entries []model.FoodListEntry, db model.FoodDatabase, multiplier float64) model.Totals {
	totals := model.Totals{Nutrients: map[string]float64{}}
	for _, key := range model.NutrientKeys {
		totals.Nutrients[key] = 0
	}

	for _, entry := range entries {
		profile, ok := lookupProfile(db, entry.Name)
		if !ok {
			continue
		}
		servingGrams := profile.ServingSize.Grams
		if servingGrams <= 0 {
			servingGrams = 100
		}
		scale := entry.Grams * multiplier / servingGrams
		for _, key := range model.NutrientKeys {
			totals.Nutrients[key] += profile.Nutrients[key] * scale
		}
	}

	omega3 := totals.Nutrients["omega3"]
	omega6 := totals.Nutrients["omega6"]
	if omega3 > 0 && omega6 > 0 {
		ratio := omega3 / omega6
		totals.Omega36Ratio = &ratio
	}

	return totals
}

// MultiplierForCalorieTarget derives the global multiplier that would bring
// the unscaled calorie total to the target. Returns 1 when either value is
// non-positive.
func MultiplierForCalorieTarget(targetCalories, unscaledCalories float64) float64 {
	if targetCalories <= 0 || unscaledCalories <= 0 {
		return 1
	}
	return targetCalories / unscaledCalories
}

// lookupProfile resolves a food name case-insensitively.
func lookupProfile(db model.FoodDatabase, name string) (model.NutrientProfile, bool) {
	if p, ok := db[name]; ok {
		return p, true
	}
	want := normalizeName(name)
	for k, p := range db {
		if normalizeName(k) == want {
			return p, true
		}
	}
	return model.NutrientProfile{}, false
}
