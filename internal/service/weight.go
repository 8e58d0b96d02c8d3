package service

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// cacheTolerance is how far a freshly resolved grams-per-unit value may
// drift from the cached one before the cache entry is overwritten.
const cacheTolerance = 0.5

// wholeFoodGrams holds reference weights for one whole item of common
// foods, keyed by lowercased name. Foods not listed here fall through to
// the external estimator.
var wholeFoodGrams = map[string]float64{
	"potato":       213,
	"apple":        182,
	"banana":       118,
	"egg":          50,
	"eggs":         50,
	"orange":       131,
	"avocado":      201,
	"onion":        110,
	"carrot":       61,
	"tomato":       123,
	"lemon":        58,
	"lime":         44,
	"cucumber":     201,
	"sweet potato": 130,
	"bell pepper":  119,
	"garlic clove": 5,
}

// WeightEstimator produces a grams-per-unit estimate for one count-based
// unit of a food, typically by asking an external model.
type WeightEstimator interface {
	EstimateWholeGrams(ctx context.Context, name string, quantity float64, unit string) (float64, error)
}

// EstimationError reports that external weight estimation was required but
// unavailable, failed, or returned an unusable value.
type EstimationError struct {
	Food string
	Unit string
	Err  error
}

func (e *EstimationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("estimate weight of %q per %s: %v", e.Food, e.Unit, e.Err)
	}
	return fmt.Sprintf("estimate weight of %q per %s failed", e.Food, e.Unit)
}

func (e *EstimationError) Unwrap() error { return e.Err }

// FoodQuantity is the input to weight resolution.
type FoodQuantity struct {
	Name     string
	Quantity float64
	Unit     string
}

// ResolvedWeight is the outcome: total grams, the grams-per-unit factor
// when one applied (0 for static and fallback resolutions), and the
// canonical unit key the input normalized to.
type ResolvedWeight struct {
	Grams        float64
	GramsPerUnit float64
	UnitKey      string
}

// UnitWeightCache memoizes learned grams-per-unit factors keyed by
// normalized food name and normalized unit.
type UnitWeightCache struct {
	weights map[string]map[string]float64
}

func NewUnitWeightCache() *UnitWeightCache {
	return &UnitWeightCache{weights: map[string]map[string]float64{}}
}

func UnitWeightCacheFrom(weights map[string]map[string]float64) *UnitWeightCache {
	if weights == nil {
		weights = map[string]map[string]float64{}
	}
	return &UnitWeightCache{weights: weights}
}

func (c *UnitWeightCache) Get(food, unit string) (float64, bool) {
	byUnit, ok := c.weights[normalizeName(food)]
	if !ok {
		return 0, false
	}
	w, ok := byUnit[NormalizeUnit(unit)]
	return w, ok
}

// Put stores a learned factor. An existing entry is kept unless the new
// value disagrees with it by more than the tolerance.
func (c *UnitWeightCache) Put(food, unit string, gramsPerUnit float64) {
	name := normalizeName(food)
	unitKey := NormalizeUnit(unit)
	byUnit, ok := c.weights[name]
	if !ok {
		byUnit = map[string]float64{}
		c.weights[name] = byUnit
	}
	if existing, ok := byUnit[unitKey]; ok && math.Abs(existing-gramsPerUnit) <= cacheTolerance {
		return
	}
	byUnit[unitKey] = gramsPerUnit
}

// Weights exposes the underlying map for persistence.
func (c *UnitWeightCache) Weights() map[string]map[string]float64 {
	return c.weights
}

// ResolveGrams turns a (food, quantity, unit) triple into grams.
//
// Priority order: static unit factors, then the learned cache, then the
// built-in whole-food table, then external estimation for "whole" units.
// An unrecognized non-"whole" unit with no cached factor treats the
// quantity as already being grams; that lossy default is deliberate.
func ResolveGrams(ctx context.Context, in FoodQuantity, cache *UnitWeightCache, est WeightEstimator) (ResolvedWeight, error) {
	unitKey := NormalizeUnit(in.Unit)

	if f, ok := StaticGramsPerUnit(unitKey); ok {
		return ResolvedWeight{Grams: in.Quantity * f, UnitKey: unitKey}, nil
	}

	if cache != nil {
		if w, ok := cache.Get(in.Name, unitKey); ok {
			return ResolvedWeight{Grams: in.Quantity * w, GramsPerUnit: w, UnitKey: unitKey}, nil
		}
	}

	if unitKey == UnitWhole {
		if w, ok := wholeFoodGrams[normalizeName(in.Name)]; ok {
			if cache != nil {
				cache.Put(in.Name, unitKey, w)
			}
			return ResolvedWeight{Grams: in.Quantity * w, GramsPerUnit: w, UnitKey: unitKey}, nil
		}
		if est == nil {
			return ResolvedWeight{}, &EstimationError{Food: in.Name, Unit: unitKey, Err: fmt.Errorf("no estimator configured")}
		}
		w, err := est.EstimateWholeGrams(ctx, in.Name, in.Quantity, unitKey)
		if err != nil {
			return ResolvedWeight{}, &EstimationError{Food: in.Name, Unit: unitKey, Err: err}
		}
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return ResolvedWeight{}, &EstimationError{Food: in.Name, Unit: unitKey, Err: fmt.Errorf("non-positive estimate %v", w)}
		}
		if cache != nil {
			cache.Put(in.Name, unitKey, w)
		}
		return ResolvedWeight{Grams: in.Quantity * w, GramsPerUnit: w, UnitKey: unitKey}, nil
	}

	// Last resort: treat the quantity as grams.
	return ResolvedWeight{Grams: in.Quantity, UnitKey: unitKey}, nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}
