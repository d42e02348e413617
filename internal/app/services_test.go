package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutrilog/internal/domain"
)

type mealRepoMock struct {
	AddMealFn    func(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error)
	UpdateMealFn func(ctx context.Context, m domain.MealRecord) (domain.MealRecord, error)
	DeleteMealFn func(ctx context.Context, id string) error
	ListMealsFn  func(ctx context.Context, p domain.Period, userID string) ([]domain.MealRecord, error)
}

func (m *mealRepoMock) AddMeal(ctx context.Context, rec domain.MealRecord) (domain.MealRecord, error) {
	return m.AddMealFn(ctx, rec)
}

func (m *mealRepoMock) UpdateMeal(ctx context.Context, rec domain.MealRecord) (domain.MealRecord, error) {
	return m.UpdateMealFn(ctx, rec)
}

func (m *mealRepoMock) DeleteMeal(ctx context.Context, id string) error {
	return m.DeleteMealFn(ctx, id)
}

func (m *mealRepoMock) ListMeals(ctx context.Context, p domain.Period, userID string) ([]domain.MealRecord, error) {
	return m.ListMealsFn(ctx, p, userID)
}

type waterRepoMock struct {
	AddWaterFn    func(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error)
	UpdateWaterFn func(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error)
	DeleteWaterFn func(ctx context.Context, id string) error
	ListWaterFn   func(ctx context.Context, p domain.Period, userID string) ([]domain.WaterRecord, error)
}

func (m *waterRepoMock) AddWater(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	return m.AddWaterFn(ctx, w)
}

func (m *waterRepoMock) UpdateWater(ctx context.Context, w domain.WaterRecord) (domain.WaterRecord, error) {
	return m.UpdateWaterFn(ctx, w)
}

func (m *waterRepoMock) DeleteWater(ctx context.Context, id string) error {
	return m.DeleteWaterFn(ctx, id)
}

func (m *waterRepoMock) ListWater(ctx context.Context, p domain.Period, userID string) ([]domain.WaterRecord, error) {
	return m.ListWaterFn(ctx, p, userID)
}

type weightRepoMock struct {
	AddWeightFn    func(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error)
	UpdateWeightFn func(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error)
	DeleteWeightFn func(ctx context.Context, id string) error
	ListWeightFn   func(ctx context.Context, p domain.Period, userID string) ([]domain.WeightRecord, error)
}

func (m *weightRepoMock) AddWeight(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	return m.AddWeightFn(ctx, w)
}

func (m *weightRepoMock) UpdateWeight(ctx context.Context, w domain.WeightRecord) (domain.WeightRecord, error) {
	return m.UpdateWeightFn(ctx, w)
}

func (m *weightRepoMock) DeleteWeight(ctx context.Context, id string) error {
	return m.DeleteWeightFn(ctx, id)
}

func (m *weightRepoMock) ListWeight(ctx context.Context, p domain.Period, userID string) ([]domain.WeightRecord, error) {
	return m.ListWeightFn(ctx, p, userID)
}

type settingsRepoMock struct {
	GetSettingsFn  func(ctx context.Context, userID string) (domain.UserSettings, error)
	SaveSettingsFn func(ctx context.Context, s domain.UserSettings) (domain.UserSettings, error)
}

func (m *settingsRepoMock) GetSettings(ctx context.Context, userID string) (domain.UserSettings, error) {
	return m.GetSettingsFn(ctx, userID)
}

func (m *settingsRepoMock) SaveSettings(ctx context.Context, s domain.UserSettings) (domain.UserSettings, error) {
	return m.SaveSettingsFn(ctx, s)
}

func TestMealServiceAddValidation(t *testing.T) {
	negative := -10
	tests := []struct {
		name string
		meal domain.MealRecord
	}{
		{"unknown category", domain.MealRecord{Title: "X", Category: "brunch"}},
		{"negative calories", domain.MealRecord{Title: "X", Calories: -1}},
		{"negative protein", domain.MealRecord{Title: "X", Protein: -1}},
		{"negative portion", domain.MealRecord{Title: "X", PortionWeight: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mealRepoMock{
				AddMealFn: func(context.Context, domain.MealRecord) (domain.MealRecord, error) {
					t.Fatal("repository must not be reached on invalid input")
					return domain.MealRecord{}, nil
				},
			}
			svc := NewMealService(repo)

			_, err := svc.Add(context.Background(), tt.meal)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestMealServiceAddPassesThrough(t *testing.T) {
	in := domain.MealRecord{Title: "Salad", Category: domain.CategoryLunch, Calories: 320, MealTime: time.Now()}
	repo := &mealRepoMock{
		AddMealFn: func(_ context.Context, m domain.MealRecord) (domain.MealRecord, error) {
			m.ID = "meal_1"
			return m, nil
		},
	}

	got, err := NewMealService(repo).Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.ID != "meal_1" || got.Title != "Salad" {
		t.Errorf("got %+v, want the stored row back", got)
	}
}

func TestMealServiceUpdateRequiresID(t *testing.T) {
	svc := NewMealService(&mealRepoMock{})

	_, err := svc.Update(context.Background(), domain.MealRecord{Title: "X"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestMealServiceUpdateMissingRow(t *testing.T) {
	repo := &mealRepoMock{
		UpdateMealFn: func(context.Context, domain.MealRecord) (domain.MealRecord, error) {
			return domain.MealRecord{}, domain.ErrNotFound
		},
	}

	_, err := NewMealService(repo).Update(context.Background(), domain.MealRecord{ID: "meal_missing", Title: "X"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestWaterServiceValidation(t *testing.T) {
	svc := NewWaterService(&waterRepoMock{})

	if _, err := svc.Add(context.Background(), domain.WaterRecord{AmountML: -200}); err == nil {
		t.Error("negative amount accepted")
	}
	if _, err := svc.Update(context.Background(), domain.WaterRecord{AmountML: 200}); err == nil {
		t.Error("update without id accepted")
	}
}

func TestWaterServiceTotalForDay(t *testing.T) {
	repo := &waterRepoMock{
		ListWaterFn: func(context.Context, domain.Period, string) ([]domain.WaterRecord, error) {
			return []domain.WaterRecord{
				{AmountML: 300, RecordDate: "2025-06-01"},
				{AmountML: 250, RecordDate: "2025-06-01"},
				{AmountML: 500, RecordDate: "2025-05-31"},
			}, nil
		},
	}

	total, err := NewWaterService(repo).TotalForDay(context.Background(), "2025-06-01", "")
	if err != nil {
		t.Fatalf("TotalForDay: %v", err)
	}
	if total != 550 {
		t.Errorf("total = %d, want 550", total)
	}
}

func TestWeightServiceValidation(t *testing.T) {
	svc := NewWeightService(&weightRepoMock{})

	if _, err := svc.Add(context.Background(), domain.WeightRecord{WeightKG: 0}); err == nil {
		t.Error("zero weight accepted")
	}
	if _, err := svc.Add(context.Background(), domain.WeightRecord{WeightKG: -70}); err == nil {
		t.Error("negative weight accepted")
	}
	if _, err := svc.Update(context.Background(), domain.WeightRecord{WeightKG: 70}); err == nil {
		t.Error("update without id accepted")
	}
}

func TestSettingsServiceGetCreatesDefaults(t *testing.T) {
	var saved domain.UserSettings
	repo := &settingsRepoMock{
		GetSettingsFn: func(context.Context, string) (domain.UserSettings, error) {
			return domain.UserSettings{}, domain.ErrNotFound
		},
		SaveSettingsFn: func(_ context.Context, s domain.UserSettings) (domain.UserSettings, error) {
			saved = s
			s.ID = "settings_1"
			return s, nil
		},
	}

	got, err := NewSettingsService(repo).Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "settings_1" {
		t.Errorf("ID = %q, want the created row", got.ID)
	}
	if saved.DailyCalorieGoal != domain.DefaultCalorieGoal {
		t.Errorf("DailyCalorieGoal = %d, want %d", saved.DailyCalorieGoal, domain.DefaultCalorieGoal)
	}
	if saved.DailyWaterGoalML != domain.DefaultWaterGoalML {
		t.Errorf("DailyWaterGoalML = %d, want %d", saved.DailyWaterGoalML, domain.DefaultWaterGoalML)
	}
	if saved.Language != domain.DefaultLanguage {
		t.Errorf("Language = %q, want %q", saved.Language, domain.DefaultLanguage)
	}
}

func TestSettingsServiceGetExisting(t *testing.T) {
	repo := &settingsRepoMock{
		GetSettingsFn: func(context.Context, string) (domain.UserSettings, error) {
			return domain.UserSettings{ID: "settings_1", DailyCalorieGoal: 1800}, nil
		},
		SaveSettingsFn: func(context.Context, domain.UserSettings) (domain.UserSettings, error) {
			t.Fatal("existing settings must not be re-saved")
			return domain.UserSettings{}, nil
		},
	}

	got, err := NewSettingsService(repo).Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DailyCalorieGoal != 1800 {
		t.Errorf("DailyCalorieGoal = %d, want 1800", got.DailyCalorieGoal)
	}
}

func TestSettingsServiceSaveValidation(t *testing.T) {
	zero := 0.0
	svc := NewSettingsService(&settingsRepoMock{})

	tests := []struct {
		name string
		in   domain.UserSettings
	}{
		{"negative calorie goal", domain.UserSettings{DailyCalorieGoal: -1}},
		{"negative water goal", domain.UserSettings{DailyWaterGoalML: -1}},
		{"zero target weight", domain.UserSettings{TargetWeightKG: &zero}},
		{"zero initial weight", domain.UserSettings{InitialWeightKG: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestSettingsServiceSaveDefaultsLanguage(t *testing.T) {
	repo := &settingsRepoMock{
		SaveSettingsFn: func(_ context.Context, s domain.UserSettings) (domain.UserSettings, error) {
			return s, nil
		},
	}

	got, err := NewSettingsService(repo).Save(context.Background(), domain.UserSettings{DailyCalorieGoal: 1900})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got.Language != domain.DefaultLanguage {
		t.Errorf("Language = %q, want %q", got.Language, domain.DefaultLanguage)
	}
}
