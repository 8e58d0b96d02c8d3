package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/store"
)

// SaveSnapshot stores the current list and settings under a name.
func (s *Session) SaveSnapshot(name string) error {
	name = normalizeName(name)
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	snapshots, err := s.loadSnapshots()
	if err != nil {
		return err
	}

	s.mu.Lock()
	entries := make([]model.FoodListEntry, len(s.Entries))
	copy(entries, s.Entries)
	snap := model.Snapshot{
		Foods:               entries,
		Multiplier:          s.Multiplier,
		TargetDailyCalories: s.TargetCalories,
		RDAGender:           s.RDAGender,
		SavedAt:             time.Now().UTC(),
	}
	s.ListName = name
	s.mu.Unlock()

	snapshots[name] = snap
	if err := s.st.Set(store.KeySavedLists, snapshots); err != nil {
		return err
	}
	return s.st.Set(store.KeyCurrentListName, name)
}

// LoadSnapshot replaces the current list and settings wholesale.
func (s *Session) LoadSnapshot(name string) error {
	name = normalizeName(name)
	snapshots, err := s.loadSnapshots()
	if err != nil {
		return err
	}
	snap, ok := snapshots[name]
	if !ok {
		return fmt.Errorf("snapshot %q not found", name)
	}
	s.restore(name, snap)
	return nil
}

func (s *Session) DeleteSnapshot(name string) error {
	name = normalizeName(name)
	snapshots, err := s.loadSnapshots()
	if err != nil {
		return err
	}
	if _, ok := snapshots[name]; !ok {
		return fmt.Errorf("snapshot %q not found", name)
	}
	delete(snapshots, name)
	return s.st.Set(store.KeySavedLists, snapshots)
}

// ListSnapshots returns saved snapshot names in sorted order.
func (s *Session) ListSnapshots() ([]string, map[string]model.Snapshot, error) {
	snapshots, err := s.loadSnapshots()
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(snapshots))
	for name := range snapshots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, snapshots, nil
}

// exportData is the on-disk interchange format for a single snapshot.
type exportData struct {
	Name                string                `json:"name"`
	Foods               []model.FoodListEntry `json:"foods"`
	Multiplier          float64               `json:"multiplier"`
	TargetDailyCalories float64               `json:"target_daily_calories"`
	RDAGender           string                `json:"rda_gender"`
	SavedAt             time.Time             `json:"saved_at"`
}

// ExportSnapshot writes a named snapshot (or the current list when name is
// empty) as indented JSON.
func (s *Session) ExportSnapshot(w io.Writer, name string) error {
	var data exportData
	if normalizeName(name) == "" {
		s.mu.Lock()
		data = exportData{
			Name:                s.ListName,
			Foods:               append([]model.FoodListEntry(nil), s.Entries...),
			Multiplier:          s.Multiplier,
			TargetDailyCalories: s.TargetCalories,
			RDAGender:           s.RDAGender,
			SavedAt:             time.Now().UTC(),
		}
		s.mu.Unlock()
	} else {
		snapshots, err := s.loadSnapshots()
		if err != nil {
			return err
		}
		snap, ok := snapshots[normalizeName(name)]
		if !ok {
			return fmt.Errorf("snapshot %q not found", name)
		}
		data = exportData{
			Name:                normalizeName(name),
			Foods:               snap.Foods,
			Multiplier:          snap.Multiplier,
			TargetDailyCalories: snap.TargetDailyCalories,
			RDAGender:           snap.RDAGender,
			SavedAt:             snap.SavedAt,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode snapshot export: %w", err)
	}
	return nil
}

// ImportSnapshot reads an exported snapshot and replaces the current list
// with it. Entries with invalid grams are rejected before anything is
// applied, so a bad file leaves the session untouched.
func (s *Session) ImportSnapshot(r io.Reader) error {
	var data exportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("decode snapshot import: %w", err)
	}
	for i, f := range data.Foods {
		if f.Name == "" {
			return fmt.Errorf("import food %d: name is required", i)
		}
		if f.Grams < 0 {
			return fmt.Errorf("import food %q: grams must be >= 0", f.Name)
		}
	}
	if data.Multiplier <= 0 {
		data.Multiplier = 1
	}
	if data.RDAGender != "" {
		if _, err := RDAForGender(data.RDAGender); err != nil {
			return err
		}
	}
	s.restore(data.Name, model.Snapshot{
		Foods:               data.Foods,
		Multiplier:          data.Multiplier,
		TargetDailyCalories: data.TargetDailyCalories,
		RDAGender:           data.RDAGender,
		SavedAt:             data.SavedAt,
	})
	return nil
}

func (s *Session) restore(name string, snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append([]model.FoodListEntry(nil), snap.Foods...)
	s.Multiplier = snap.Multiplier
	if s.Multiplier <= 0 {
		s.Multiplier = 1
	}
	s.TargetCalories = snap.TargetDailyCalories
	if snap.RDAGender != "" {
		s.RDAGender = snap.RDAGender
	}
	s.ListName = name
}

func (s *Session) loadSnapshots() (map[string]model.Snapshot, error) {
	snapshots := map[string]model.Snapshot{}
	if _, err := s.st.Get(store.KeySavedLists, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
