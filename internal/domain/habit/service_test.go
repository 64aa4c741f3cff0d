package habit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	habits      map[uint]*Habit
	categories  map[uint]*Category
	frequencies map[uint]*Frequency
	units       map[uint]*Unit
	nextID      uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		habits:      make(map[uint]*Habit),
		categories:  make(map[uint]*Category),
		frequencies: make(map[uint]*Frequency),
		units:       make(map[uint]*Unit),
	}
}

func (m *mockRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepository) Create(_ context.Context, habit *Habit) error {
	habit.ID = m.id()
	habit.Goal.ID = m.id()
	habit.Goal.HabitID = habit.ID
	clone := *habit
	m.habits[habit.ID] = &clone
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id uint) (*Habit, error) {
	h, ok := m.habits[id]
	if !ok {
		return nil, ErrHabitNotFound
	}
	return m.preload(h), nil
}

func (m *mockRepository) FindByIDForUser(_ context.Context, id, userID uint) (*Habit, error) {
	h, ok := m.habits[id]
	if !ok || h.UserID != userID {
		return nil, ErrHabitNotFound
	}
	return m.preload(h), nil
}

func (m *mockRepository) FindAllByUser(_ context.Context, userID uint) ([]Habit, error) {
	var out []Habit
	for _, h := range m.habits {
		if h.UserID == userID {
			out = append(out, *m.preload(h))
		}
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, habit *Habit) error {
	if _, ok := m.habits[habit.ID]; !ok {
		return ErrHabitNotFound
	}
	clone := *habit
	m.habits[habit.ID] = &clone
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uint) error {
	if _, ok := m.habits[id]; !ok {
		return ErrHabitNotFound
	}
	delete(m.habits, id)
	return nil
}

// preload mimics the gorm Preload chain so responses carry full lookup rows.
func (m *mockRepository) preload(h *Habit) *Habit {
	clone := *h
	if c, ok := m.categories[h.CategoryID]; ok {
		clone.Category = *c
	}
	if f, ok := m.frequencies[h.FrequencyID]; ok {
		clone.Frequency = *f
	}
	if u, ok := m.units[h.Goal.UnitID]; ok {
		clone.Goal.Unit = *u
	}
	return &clone
}

func (m *mockRepository) ResolveCategory(_ context.Context, description string) (*Category, error) {
	if description == "" {
		return nil, ErrInvalidInput
	}
	for _, c := range m.categories {
		if c.Description == description {
			return c, nil
		}
	}
	c := &Category{ID: m.id(), Description: description}
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockRepository) ResolveFrequency(_ context.Context, description string) (*Frequency, error) {
	if description == "" {
		return nil, ErrInvalidInput
	}
	for _, f := range m.frequencies {
		if f.Description == description {
			return f, nil
		}
	}
	f := &Frequency{ID: m.id(), Description: description}
	m.frequencies[f.ID] = f
	return f, nil
}

func (m *mockRepository) ResolveUnit(_ context.Context, description string) (*Unit, error) {
	if description == "" {
		return nil, ErrInvalidInput
	}
	for _, u := range m.units {
		if u.Description == description {
			return u, nil
		}
	}
	u := &Unit{ID: m.id(), Description: description}
	m.units[u.ID] = u
	return u, nil
}

func (m *mockRepository) ListCategories(_ context.Context) ([]Category, error) {
	var out []Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockRepository) ListFrequencies(_ context.Context) ([]Frequency, error) {
	var out []Frequency
	for _, f := range m.frequencies {
		out = append(out, *f)
	}
	return out, nil
}

func (m *mockRepository) ListUnits(_ context.Context) ([]Unit, error) {
	var out []Unit
	for _, u := range m.units {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) RenameCategory(_ context.Context, id uint, description string) (*Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, ErrLookupNotFound
	}
	for _, other := range m.categories {
		if other.ID != id && other.Description == description {
			return nil, ErrLookupConflict
		}
	}
	c.Description = description
	return c, nil
}

func (m *mockRepository) RenameFrequency(_ context.Context, id uint, description string) (*Frequency, error) {
	f, ok := m.frequencies[id]
	if !ok {
		return nil, ErrLookupNotFound
	}
	for _, other := range m.frequencies {
		if other.ID != id && other.Description == description {
			return nil, ErrLookupConflict
		}
	}
	f.Description = description
	return f, nil
}

func (m *mockRepository) RenameUnit(_ context.Context, id uint, description string) (*Unit, error) {
	u, ok := m.units[id]
	if !ok {
		return nil, ErrLookupNotFound
	}
	for _, other := range m.units {
		if other.ID != id && other.Description == description {
			return nil, ErrLookupConflict
		}
	}
	u.Description = description
	return u, nil
}

func (m *mockRepository) DeleteCategory(_ context.Context, id uint) error {
	if _, ok := m.categories[id]; !ok {
		return ErrLookupNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockRepository) DeleteFrequency(_ context.Context, id uint) error {
	if _, ok := m.frequencies[id]; !ok {
		return ErrLookupNotFound
	}
	delete(m.frequencies, id)
	return nil
}

func (m *mockRepository) DeleteUnit(_ context.Context, id uint) error {
	if _, ok := m.units[id]; !ok {
		return ErrLookupNotFound
	}
	delete(m.units, id)
	return nil
}

func validInput() CreateHabitInput {
	return CreateHabitInput{
		UserID:       1,
		Name:         "Beber agua",
		Icon:         "💧",
		Category:     "Salud",
		Frequency:    "diaria",
		GoalQuantity: 8,
		GoalUnit:     "vasos",
	}
}

func TestCreateHabitResolvesLookups(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	created, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Salud", created.Category.Description)
	assert.Equal(t, "diaria", created.Frequency.Description)
	assert.Equal(t, "vasos", created.Goal.Unit.Description)
	assert.Equal(t, 8.0, created.Goal.Quantity)

	// Same descriptions on a second habit reuse the existing lookup rows
	second, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, created.CategoryID, second.CategoryID)
	assert.Equal(t, created.FrequencyID, second.FrequencyID)
	assert.Equal(t, created.Goal.UnitID, second.Goal.UnitID)
	assert.Len(t, repo.categories, 1)
}

func TestCreateHabitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateHabitInput)
	}{
		{"empty name", func(in *CreateHabitInput) { in.Name = "" }},
		{"empty category", func(in *CreateHabitInput) { in.Category = "" }},
		{"zero goal quantity", func(in *CreateHabitInput) { in.GoalQuantity = 0 }},
		{"negative goal quantity", func(in *CreateHabitInput) { in.GoalQuantity = -2 }},
		{"malformed reminder time", func(in *CreateHabitInput) {
			in.ReminderEnabled = true
			in.ReminderTime = "25:90"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMockRepository(), nil, zap.NewNop())
			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreateHabit(context.Background(), input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateHabitWithReminder(t *testing.T) {
	svc := NewService(newMockRepository(), nil, zap.NewNop())

	input := validInput()
	input.ReminderEnabled = true
	input.ReminderTime = "07:30"

	created, err := svc.CreateHabit(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, created.ReminderEnabled)
	assert.Equal(t, "07:30", created.ReminderTime)
}

func TestUpdateHabitPartial(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	created, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)

	name := "Beber más agua"
	updated, err := svc.UpdateHabit(context.Background(), created.ID, 1, UpdateHabitInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Beber más agua", updated.Name)
	// Untouched fields survive the partial update
	assert.Equal(t, created.CategoryID, updated.CategoryID)
	assert.Equal(t, 8.0, updated.Goal.Quantity)
}

func TestUpdateHabitRejectsZeroGoal(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	created, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)

	zero := 0.0
	_, err = svc.UpdateHabit(context.Background(), created.ID, 1, UpdateHabitInput{GoalQuantity: &zero})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateHabitSwitchesUnit(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	created, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)

	unit := "litros"
	updated, err := svc.UpdateHabit(context.Background(), created.ID, 1, UpdateHabitInput{GoalUnit: &unit})
	require.NoError(t, err)
	assert.Equal(t, "litros", updated.Goal.Unit.Description)
	assert.NotEqual(t, created.Goal.UnitID, updated.Goal.UnitID)
}

func TestHabitOwnershipNeverLeaks(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	created, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)

	// User 2 sees not-found, never forbidden
	_, err = svc.GetHabit(context.Background(), created.ID, 2)
	assert.ErrorIs(t, err, ErrHabitNotFound)

	name := "hijacked"
	_, err = svc.UpdateHabit(context.Background(), created.ID, 2, UpdateHabitInput{Name: &name})
	assert.ErrorIs(t, err, ErrHabitNotFound)

	err = svc.DeleteHabit(context.Background(), created.ID, 2)
	assert.ErrorIs(t, err, ErrHabitNotFound)

	// Still intact for its owner
	got, err := svc.GetHabit(context.Background(), created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Beber agua", got.Name)
}

func TestDeleteHabit(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	created, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHabit(context.Background(), created.ID, 1))
	_, err = svc.GetHabit(context.Background(), created.ID, 1)
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestListLookups(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	_, err := svc.CreateHabit(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Category = "Deporte"
	input.GoalUnit = "minutos"
	_, err = svc.CreateHabit(context.Background(), input)
	require.NoError(t, err)

	lookups, err := svc.ListLookups(context.Background())
	require.NoError(t, err)
	assert.Len(t, lookups.Categories, 2)
	assert.Len(t, lookups.Frequencies, 1)
	assert.Len(t, lookups.Units, 2)
}

func TestRenameCategoryConflict(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())

	salud, err := repo.ResolveCategory(context.Background(), "Salud")
	require.NoError(t, err)
	_, err = repo.ResolveCategory(context.Background(), "Deporte")
	require.NoError(t, err)

	_, err = svc.RenameCategory(context.Background(), salud.ID, "Deporte")
	assert.ErrorIs(t, err, ErrLookupConflict)

	renamed, err := svc.RenameCategory(context.Background(), salud.ID, "Bienestar")
	require.NoError(t, err)
	assert.Equal(t, "Bienestar", renamed.Description)
}

func TestDeleteLookupNotFound(t *testing.T) {
	svc := NewService(newMockRepository(), nil, zap.NewNop())

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), 99), ErrLookupNotFound)
	assert.ErrorIs(t, svc.DeleteFrequency(context.Background(), 99), ErrLookupNotFound)
	assert.ErrorIs(t, svc.DeleteUnit(context.Background(), 99), ErrLookupNotFound)
}
