package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

func TestLoadSessionSeedsOnFirstRun(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s, err := service.LoadSession(st)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if len(s.DB) == 0 {
		t.Fatalf("first run must seed the food catalog")
	}
	if _, ok := s.DB["Lentils"]; !ok {
		t.Fatalf("seed catalog missing Lentils")
	}
	if s.Multiplier != 1 {
		t.Fatalf("default multiplier = %v, want 1", s.Multiplier)
	}
	if s.RDAGender != service.GenderMale {
		t.Fatalf("default gender = %q, want male", s.RDAGender)
	}
}

func TestSessionSaveAndReload(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s, err := service.LoadSession(st)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if _, err := s.AddEntry(context.Background(), "Lentils", 200, "g", nil); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := s.SetMultiplier(1.5); err != nil {
		t.Fatalf("set multiplier: %v", err)
	}
	if err := s.SetRDAGender(service.GenderFemale); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	s.Cache.Put("dragon fruit", "whole", 85)
	if err := s.Save(); err != nil {
		t.Fatalf("save session: %v", err)
	}

	reloaded, err := service.LoadSession(st)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if len(reloaded.Entries) != 1 || reloaded.Entries[0].Name != "Lentils" {
		t.Fatalf("entries did not survive reload: %+v", reloaded.Entries)
	}
	if reloaded.Entries[0].Grams != 200 {
		t.Fatalf("entry grams = %v, want 200", reloaded.Entries[0].Grams)
	}
	if reloaded.Multiplier != 1.5 {
		t.Fatalf("multiplier = %v, want 1.5", reloaded.Multiplier)
	}
	if reloaded.RDAGender != service.GenderFemale {
		t.Fatalf("gender = %q, want female", reloaded.RDAGender)
	}
	if w, ok := reloaded.Cache.Get("dragon fruit", "whole"); !ok || w != 85 {
		t.Fatalf("unit weight cache did not survive reload: %v %v", w, ok)
	}
}

func TestSessionAddEntryValidation(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s, err := service.LoadSession(st)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if _, err := s.AddEntry(context.Background(), "  ", 100, "g", nil); err == nil {
		t.Fatalf("blank name must be rejected")
	}
	if _, err := s.AddEntry(context.Background(), "Lentils", -5, "g", nil); err == nil {
		t.Fatalf("negative quantity must be rejected")
	}
	entry, err := s.AddEntry(context.Background(), "Lentils", 2, "cups", nil)
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("entry must get an id")
	}
	if math.Abs(entry.Grams-473.176473) > 1e-9 {
		t.Fatalf("2 cups = %v g, want 473.176473", entry.Grams)
	}
}

func TestSessionUpdateAndRemoveEntry(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s, err := service.LoadSession(st)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	entry, err := s.AddEntry(context.Background(), "Potato", 100, "g", nil)
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := s.UpdateEntry(context.Background(), entry.ID, 1, "whole", nil); err != nil {
		t.Fatalf("update entry: %v", err)
	}
	if s.Entries[0].Grams != 213 {
		t.Fatalf("updated grams = %v, want 213 (builtin whole potato)", s.Entries[0].Grams)
	}
	if err := s.UpdateEntry(context.Background(), "missing", 1, "g", nil); err == nil {
		t.Fatalf("unknown id must be rejected")
	}
	if err := s.RemoveEntry(entry.ID); err != nil {
		t.Fatalf("remove entry: %v", err)
	}
	if len(s.Entries) != 0 {
		t.Fatalf("entry not removed")
	}
	if err := s.RemoveEntry(entry.ID); err == nil {
		t.Fatalf("removing a removed entry must fail")
	}
}

func TestSessionCalorieTarget(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s, err := service.LoadSession(st)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	// 200 g of Lentils is 232 kcal unscaled.
	if _, err := s.AddEntry(context.Background(), "Lentils", 200, "g", nil); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := s.SetCalorieTarget(2320); err != nil {
		t.Fatalf("set calorie target: %v", err)
	}
	if math.Abs(s.Multiplier-10) > 1e-9 {
		t.Fatalf("derived multiplier = %v, want 10", s.Multiplier)
	}
	totals := s.Totals()
	if math.Abs(totals.Nutrients["calories"]-2320) > 1e-9 {
		t.Fatalf("scaled calories = %v, want 2320", totals.Nutrients["calories"])
	}
	// A manual multiplier clears the stored target.
	if err := s.SetMultiplier(2); err != nil {
		t.Fatalf("set multiplier: %v", err)
	}
	if s.TargetCalories != 0 {
		t.Fatalf("manual multiplier must reset the calorie target")
	}
}

func TestSessionPutProfile(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s, err := service.LoadSession(st)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if err := s.PutProfile("Empty Thing", model.NutrientProfile{}); err == nil {
		t.Fatalf("empty profile must be rejected")
	}
	profile := model.NutrientProfile{
		Nutrients:   map[string]float64{"calories": 50},
		ServingSize: model.DefaultServingSize(),
		Source:      "estimate",
	}
	if err := s.PutProfile("Dragon Fruit", profile); err != nil {
		t.Fatalf("put profile: %v", err)
	}
	// Replacing under a case variant must not duplicate.
	profile.Nutrients = map[string]float64{"calories": 60}
	if err := s.PutProfile("dragon fruit", profile); err != nil {
		t.Fatalf("replace profile: %v", err)
	}
	got, ok := s.Profile("DRAGON FRUIT")
	if !ok {
		t.Fatalf("profile lookup failed")
	}
	if got.Nutrients["calories"] != 60 {
		t.Fatalf("replacement did not take: %v", got.Nutrients["calories"])
	}
	count := 0
	for name := range s.DB {
		if name == "Dragon Fruit" || name == "dragon fruit" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("case variants duplicated the profile: %d copies", count)
	}

	if err := s.RemoveProfile("Dragon FRUIT"); err != nil {
		t.Fatalf("remove profile: %v", err)
	}
	if err := s.RemoveProfile("dragon fruit"); err == nil {
		t.Fatalf("removing a removed profile must fail")
	}
}
