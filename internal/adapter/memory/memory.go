// Package memory implements the record store in process memory. It backs
// tests and is the documented fallback when the embedded SQLite store is
// unavailable on the host platform: every operation still returns a
// structurally valid result, nothing is durable.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"nutrilog/internal/domain"
)

// Store implements every domain repository port in memory.
type Store struct {
	mu       sync.Mutex
	meals    []domain.MealRecord
	water    []domain.WaterRecord
	weights  []domain.WeightRecord
	settings []domain.UserSettings

	// now is overridable in tests.
	now func() time.Time
}

// Compile-time port checks.
var (
	_ domain.MealRepository     = (*Store)(nil)
	_ domain.WaterRepository    = (*Store)(nil)
	_ domain.WeightRepository   = (*Store)(nil)
	_ domain.SettingsRepository = (*Store)(nil)
	_ domain.SnapshotRepository = (*Store)(nil)
)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{now: time.Now}
}

// --- MealRepository ---

func (s *Store) AddMeal(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if m.ID == "" {
		m.ID = domain.NewID(domain.MealIDPrefix)
	}
	if m.MealTime.IsZero() {
		m.MealTime = now
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	s.meals = append(s.meals, m)
	return m, nil
}

func (s *Store) UpdateMeal(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.meals {
		if cur.ID == m.ID {
			m.CreatedAt = cur.CreatedAt
			m.UpdatedAt = s.now()
			s.meals[i] = m
			return m, nil
		}
	}
	return domain.MealRecord{}, domain.ErrNotFound
}

func (s *Store) DeleteMeal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.meals {
		if cur.ID == id {
			s.meals = append(s.meals[:i], s.meals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListMeals(ctx context.Context, p domain.Period, userID string) ([]domain.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := p.Or(domain.DefaultMealPeriod).Start(s.now())
	out := []domain.MealRecord{}
	for _, m := range s.meals {
		if m.MealTime.Before(start) {
			continue
		}
		if userID != "" && m.UserID != userID {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MealTime.After(out[j].MealTime) })
	return out, nil
}

// --- WaterRepository ---

func (s *Store) AddWater(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if w.ID == "" {
		w.ID = domain.NewID(domain.WaterIDPrefix)
	}
	if w.RecordDate == "" {
		w.RecordDate = now.Format(domain.DateLayout)
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	s.water = append(s.water, w)
	return w, nil
}

func (s *Store) UpdateWater(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.water {
		if cur.ID == w.ID {
			w.CreatedAt = cur.CreatedAt
			s.water[i] = w
			return w, nil
		}
	}
	return domain.WaterRecord{}, domain.ErrNotFound
}

func (s *Store) DeleteWater(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.water {
		if cur.ID == id {
			s.water = append(s.water[:i], s.water[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListWater(ctx context.Context, p domain.Period, userID string) ([]domain.WaterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	since := p.Or(domain.DefaultWaterPeriod).StartDate(s.now())
	out := []domain.WaterRecord{}
	for _, w := range s.water {
		if w.RecordDate < since {
			continue
		}
		if userID != "" && w.UserID != userID {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordDate != out[j].RecordDate {
			return out[i].RecordDate > out[j].RecordDate
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --- WeightRepository ---

func (s *Store) AddWeight(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if w.ID == "" {
		w.ID = domain.NewID(domain.WeightIDPrefix)
	}
	if w.RecordDate == "" {
		w.RecordDate = now.Format(domain.DateLayout)
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	s.weights = append(s.weights, w)
	return w, nil
}

func (s *Store) UpdateWeight(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.weights {
		if cur.ID == w.ID {
			w.CreatedAt = cur.CreatedAt
			s.weights[i] = w
			return w, nil
		}
	}
	return domain.WeightRecord{}, domain.ErrNotFound
}

func (s *Store) DeleteWeight(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.weights {
		if cur.ID == id {
			s.weights = append(s.weights[:i], s.weights[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListWeight(ctx context.Context, p domain.Period, userID string) ([]domain.WeightRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	since := p.Or(domain.DefaultWeightPeriod).StartDate(s.now())
	out := []domain.WeightRecord{}
	for _, w := range s.weights {
		if w.RecordDate < since {
			continue
		}
		if userID != "" && w.UserID != userID {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordDate != out[j].RecordDate {
			return out[i].RecordDate > out[j].RecordDate
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --- SettingsRepository ---

func (s *Store) GetSettings(ctx context.Context, userID string) (domain.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found  bool
		oldest domain.UserSettings
	)
	for _, st := range s.settings {
		if userID != "" && st.UserID != userID {
			continue
		}
		if !found || st.CreatedAt.Before(oldest.CreatedAt) {
			oldest = st
			found = true
		}
	}
	if !found {
		return domain.UserSettings{}, domain.ErrNotFound
	}
	return oldest, nil
}

func (s *Store) SaveSettings(ctx context.Context, st domain.UserSettings) (domain.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if st.ID == "" {
		st.ID = domain.NewID(domain.SettingsIDPrefix)
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	st.UpdatedAt = now

	for i, cur := range s.settings {
		if cur.ID == st.ID {
			st.CreatedAt = cur.CreatedAt
			s.settings[i] = st
			return st, nil
		}
	}
	s.settings = append(s.settings, st)
	return st, nil
}

// --- SnapshotRepository ---

func (s *Store) ExportAll(ctx context.Context) (domain.SnapshotData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := domain.SnapshotData{
		Meals:         make([]domain.MealRecord, len(s.meals)),
		WaterRecords:  make([]domain.WaterRecord, len(s.water)),
		WeightRecords: make([]domain.WeightRecord, len(s.weights)),
		UserSettings:  make([]domain.UserSettings, len(s.settings)),
	}
	copy(data.Meals, s.meals)
	copy(data.WaterRecords, s.water)
	copy(data.WeightRecords, s.weights)
	copy(data.UserSettings, s.settings)
	return data, nil
}

func (s *Store) ImportAll(ctx context.Context, data domain.SnapshotData, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Build the next state aside and swap at the end, so a duplicate id
	// found midway leaves the store untouched. Settings gets a real copy
	// because its merge writes elements in place.
	meals := s.meals
	water := s.water
	weights := s.weights
	settings := append([]domain.UserSettings(nil), s.settings...)
	if overwrite {
		meals, water, weights, settings = nil, nil, nil, nil
	}

	now := s.now()
	mealIDs := make(map[string]bool, len(meals))
	for _, m := range meals {
		mealIDs[m.ID] = true
	}
	for _, m := range data.Meals {
		if m.ID == "" {
			m.ID = domain.NewID(domain.MealIDPrefix)
		}
		if mealIDs[m.ID] {
			return domain.ErrDuplicateID(m.ID)
		}
		mealIDs[m.ID] = true
		if m.MealTime.IsZero() {
			m.MealTime = now
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = now
		}
		meals = append(meals, m)
	}

	waterIDs := make(map[string]bool, len(water))
	for _, w := range water {
		waterIDs[w.ID] = true
	}
	for _, w := range data.WaterRecords {
		if w.ID == "" {
			w.ID = domain.NewID(domain.WaterIDPrefix)
		}
		if waterIDs[w.ID] {
			return domain.ErrDuplicateID(w.ID)
		}
		waterIDs[w.ID] = true
		if w.RecordDate == "" {
			w.RecordDate = now.Format(domain.DateLayout)
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		water = append(water, w)
	}

	weightIDs := make(map[string]bool, len(weights))
	for _, w := range weights {
		weightIDs[w.ID] = true
	}
	for _, w := range data.WeightRecords {
		if w.ID == "" {
			w.ID = domain.NewID(domain.WeightIDPrefix)
		}
		if weightIDs[w.ID] {
			return domain.ErrDuplicateID(w.ID)
		}
		weightIDs[w.ID] = true
		if w.RecordDate == "" {
			w.RecordDate = now.Format(domain.DateLayout)
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		weights = append(weights, w)
	}

	for _, st := range data.UserSettings {
		if st.ID == "" {
			st.ID = domain.NewID(domain.SettingsIDPrefix)
		}
		if st.CreatedAt.IsZero() {
			st.CreatedAt = now
		}
		if st.UpdatedAt.IsZero() {
			st.UpdatedAt = now
		}
		replaced := false
		for i, cur := range settings {
			if cur.ID == st.ID {
				settings[i] = st
				replaced = true
				break
			}
		}
		if !replaced {
			settings = append(settings, st)
		}
	}

	s.meals, s.water, s.weights, s.settings = meals, water, weights, settings
	return nil
}

func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.meals, s.water, s.weights, s.settings = nil, nil, nil, nil
	return nil
}
