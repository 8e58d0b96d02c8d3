package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/store"
)

// Session owns all mutable state for one user: the food database, the
// learned unit-weight cache, the current list, and the scaling settings.
// Core computations stay pure; the session is the single writer, and a
// mutex guards it because estimator completions interleave with CLI work.
type Session struct {
	mu sync.Mutex
	st *store.Store

	DB             model.FoodDatabase
	Cache          *UnitWeightCache
	Entries        []model.FoodListEntry
	Multiplier     float64
	TargetCalories float64
	RDAGender      string
	ListName       string
}

// LoadSession restores session state from the store, seeding the food
// database on first run.
func LoadSession(st *store.Store) (*Session, error) {
	s := &Session{
		st:         st,
		Multiplier: 1,
		RDAGender:  GenderMale,
	}

	var db model.FoodDatabase
	found, err := st.Get(store.KeyFoodDB, &db)
	if err != nil {
		return nil, err
	}
	if found {
		s.DB = db
	} else {
		s.DB = SeedFoodDatabase()
	}

	var weights map[string]map[string]float64
	if _, err := st.Get(store.KeyUnitWeights, &weights); err != nil {
		return nil, err
	}
	s.Cache = UnitWeightCacheFrom(weights)

	if _, err := st.Get(store.KeyFoods, &s.Entries); err != nil {
		return nil, err
	}
	if _, err := st.Get(store.KeyMultiplier, &s.Multiplier); err != nil {
		return nil, err
	}
	if s.Multiplier <= 0 {
		s.Multiplier = 1
	}
	if _, err := st.Get(store.KeyTargetCalories, &s.TargetCalories); err != nil {
		return nil, err
	}
	if _, err := st.Get(store.KeyRDAGender, &s.RDAGender); err != nil {
		return nil, err
	}
	if _, err := st.Get(store.KeyCurrentListName, &s.ListName); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the whole session state back to the store.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.Set(store.KeyFoodDB, s.DB); err != nil {
		return err
	}
	if err := s.st.Set(store.KeyUnitWeights, s.Cache.Weights()); err != nil {
		return err
	}
	if err := s.st.Set(store.KeyFoods, s.Entries); err != nil {
		return err
	}
	if err := s.st.Set(store.KeyMultiplier, s.Multiplier); err != nil {
		return err
	}
	if err := s.st.Set(store.KeyTargetCalories, s.TargetCalories); err != nil {
		return err
	}
	if err := s.st.Set(store.KeyRDAGender, s.RDAGender); err != nil {
		return err
	}
	return s.st.Set(store.KeyCurrentListName, s.ListName)
}

// AddEntry weight-resolves a (food, quantity, unit) triple and appends the
// resulting entry to the current list.
func (s *Session) AddEntry(ctx context.Context, name string, quantity float64, unit string, est WeightEstimator) (model.FoodListEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.FoodListEntry{}, fmt.Errorf("food name is required")
	}
	if quantity < 0 {
		return model.FoodListEntry{}, fmt.Errorf("quantity must be >= 0")
	}

	resolved, err := ResolveGrams(ctx, FoodQuantity{Name: name, Quantity: quantity, Unit: unit}, s.Cache, est)
	if err != nil {
		return model.FoodListEntry{}, err
	}

	entry := model.FoodListEntry{
		ID:    uuid.NewString(),
		Name:  name,
		Grams: resolved.Grams,
		Unit:  resolved.UnitKey,
	}

	s.mu.Lock()
	s.Entries = append(s.Entries, entry)
	s.mu.Unlock()
	return entry, nil
}

// UpdateEntry re-resolves an existing entry's quantity in place.
func (s *Session) UpdateEntry(ctx context.Context, id string, quantity float64, unit string, est WeightEstimator) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be >= 0")
	}
	s.mu.Lock()
	idx := -1
	var name string
	for i, e := range s.Entries {
		if e.ID == id {
			idx = i
			name = e.Name
			break
		}
	}
	s.mu.Unlock()
	if idx < 0 {
		return fmt.Errorf("entry %q not found", id)
	}

	resolved, err := ResolveGrams(ctx, FoodQuantity{Name: name, Quantity: quantity, Unit: unit}, s.Cache, est)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= len(s.Entries) || s.Entries[idx].ID != id {
		return fmt.Errorf("entry %q not found", id)
	}
	s.Entries[idx].Grams = resolved.Grams
	s.Entries[idx].Unit = resolved.UnitKey
	return nil
}

func (s *Session) RemoveEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.Entries {
		if e.ID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry %q not found", id)
}

func (s *Session) ClearEntries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = nil
}

// Totals aggregates the current list under the session multiplier.
func (s *Session) Totals() model.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.Entries, s.DB, s.Multiplier)
}

func (s *Session) SetMultiplier(v float64) error {
	if v <= 0 {
		return fmt.Errorf("multiplier must be > 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Multiplier = v
	s.TargetCalories = 0
	return nil
}

// SetCalorieTarget derives the multiplier from a daily calorie target over
// the unscaled calorie total of the current list.
func (s *Session) SetCalorieTarget(target float64) error {
	if target <= 0 {
		return fmt.Errorf("calorie target must be > 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	unscaled := ComputeTotals(s.Entries, s.DB, 1)
	s.TargetCalories = target
	s.Multiplier = MultiplierForCalorieTarget(target, unscaled.Nutrients["calories"])
	return nil
}

func (s *Session) SetRDAGender(gender string) error {
	if _, err := RDAForGender(gender); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RDAGender = gender
	return nil
}

// RDA returns the table selected by the session gender.
func (s *Session) RDA() model.RDATable {
	table, err := RDAForGender(s.RDAGender)
	if err != nil {
		table, _ = RDAForGender(GenderMale)
	}
	return table
}

// PutProfile adds or replaces a food profile. An empty profile is rejected
// so a failed enrichment can never commit zeroed data.
func (s *Session) PutProfile(name string, profile model.NutrientProfile) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("food name is required")
	}
	if len(profile.Nutrients) == 0 {
		return fmt.Errorf("refusing to store empty profile for %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Replace an existing case-insensitive match instead of duplicating.
	want := normalizeName(name)
	for existing := range s.DB {
		if normalizeName(existing) == want {
			delete(s.DB, existing)
			break
		}
	}
	s.DB[name] = profile
	return nil
}

func (s *Session) RemoveProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := normalizeName(name)
	for existing := range s.DB {
		if normalizeName(existing) == want {
			delete(s.DB, existing)
			return nil
		}
	}
	return fmt.Errorf("food %q not found", name)
}

// Profile resolves a food case-insensitively.
func (s *Session) Profile(name string) (model.NutrientProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lookupProfile(s.DB, name)
}
