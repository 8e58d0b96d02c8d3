package model

import "time"

// NutrientKeys is the fixed set of tracked nutrients, in display order.
var NutrientKeys = []string{
	"calories",
	"protein",
	"fat",
	"carbs",
	"omega3",
	"omega6",
	"zinc",
	"b12",
	"magnesium",
	"vitaminE",
	"vitaminK",
	"vitaminA",
	"monounsaturated",
	"selenium",
	"iron",
	"vitaminD",
	"b1",
	"choline",
	"calcium",
	"potassium",
	"iodine",
	"vitaminC",
	"folate",
}

// Omega36RatioKey is the synthetic totals key derived from omega3/omega6.
const Omega36RatioKey = "omega3_6_ratio"

// ServingSize records what quantity a profile's nutrient amounts refer to.
// Amounts in a NutrientProfile are always per Grams grams, never per-gram.
type ServingSize struct {
	AmountValue float64 `json:"amount_value"`
	AmountUnit  string  `json:"amount_unit"`
	Grams       float64 `json:"grams"`
}

// DefaultServingSize is used for seed foods, which are tabulated per 100 g.
func DefaultServingSize() ServingSize {
	return ServingSize{AmountValue: 100, AmountUnit: "g", Grams: 100}
}

// NutrientProfile holds per-serving nutrient amounts keyed by nutrient key,
// each amount expressed in that nutrient's canonical unit.
type NutrientProfile struct {
	Nutrients   map[string]float64 `json:"nutrients"`
	ServingSize ServingSize        `json:"serving_size"`
	Source      string             `json:"source,omitempty"`
}

// FoodDatabase maps food display name to its profile. Lookups are
// case-insensitive; the display name preserves the original casing.
type FoodDatabase map[string]NutrientProfile

// FoodListEntry is one line item in the current list. Grams is the absolute
// gram quantity before the global multiplier is applied.
type FoodListEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
	Unit  string  `json:"unit"`
}

// Totals is the output of aggregation: multiplier-scaled nutrient sums plus
// the derived omega-3:6 ratio, nil when undetermined.
type Totals struct {
	Nutrients    map[string]float64 `json:"nutrients"`
	Omega36Ratio *float64           `json:"omega3_6_ratio"`
}

// RDATable maps nutrient key (plus Omega36RatioKey) to a daily target.
type RDATable map[string]float64

// ParsedQuantity is the result of parsing a loosely-typed external
// amount/unit value. Unit is empty when the source carried no usable unit.
type ParsedQuantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ParsedFood is one item from a free-text meal description.
type ParsedFood struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Snapshot is a named saved list with the settings needed to restore it.
type Snapshot struct {
	Foods               []FoodListEntry `json:"foods"`
	Multiplier          float64         `json:"multiplier"`
	TargetDailyCalories float64         `json:"target_daily_calories"`
	RDAGender           string          `json:"rda_gender"`
	SavedAt             time.Time       `json:"saved_at"`
}
