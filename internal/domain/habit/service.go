package habit

import (
	"context"
	"regexp"

	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// Service exposes habit CRUD plus lookup maintenance.
type Service interface {
	CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error)
	GetHabit(ctx context.Context, id, userID uint) (*Habit, error)
	ListHabits(ctx context.Context, userID uint) ([]Habit, error)
	UpdateHabit(ctx context.Context, id, userID uint, input UpdateHabitInput) (*Habit, error)
	DeleteHabit(ctx context.Context, id, userID uint) error

	ListLookups(ctx context.Context) (*Lookups, error)
	RenameCategory(ctx context.Context, id uint, description string) (*Category, error)
	RenameFrequency(ctx context.Context, id uint, description string) (*Frequency, error)
	RenameUnit(ctx context.Context, id uint, description string) (*Unit, error)
	DeleteCategory(ctx context.Context, id uint) error
	DeleteFrequency(ctx context.Context, id uint) error
	DeleteUnit(ctx context.Context, id uint) error
}

// Lookups bundles the three lookup tables for the habit creation form.
type Lookups struct {
	Categories  []Category  `json:"categories"`
	Frequencies []Frequency `json:"frequencies"`
	Units       []Unit      `json:"units"`
}

var reminderTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type service struct {
	repo   Repository
	redis  *cache.RedisClient
	logger *zap.Logger
}

func NewService(repo Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, logger: logger}
}

func (s *service) CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error) {
	if input.Name == "" || input.Category == "" || input.Frequency == "" || input.GoalUnit == "" {
		return nil, ErrInvalidInput
	}
	if input.GoalQuantity <= 0 {
		return nil, ErrInvalidInput
	}
	if input.ReminderEnabled && !reminderTimeRe.MatchString(input.ReminderTime) {
		return nil, ErrInvalidInput
	}

	category, err := s.repo.ResolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	frequency, err := s.repo.ResolveFrequency(ctx, input.Frequency)
	if err != nil {
		return nil, err
	}
	unit, err := s.repo.ResolveUnit(ctx, input.GoalUnit)
	if err != nil {
		return nil, err
	}

	habit := &Habit{
		UserID:          input.UserID,
		Name:            input.Name,
		Description:     input.Description,
		Icon:            input.Icon,
		CategoryID:      category.ID,
		FrequencyID:     frequency.ID,
		ReminderEnabled: input.ReminderEnabled,
		ReminderTime:    input.ReminderTime,
		Goal: Goal{
			Quantity: input.GoalQuantity,
			UnitID:   unit.ID,
		},
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	s.invalidateUserCache(ctx, input.UserID)
	s.logger.Info("habit created",
		zap.Uint("habit_id", habit.ID),
		zap.Uint("user_id", input.UserID),
		zap.String("name", habit.Name))

	return s.repo.FindByID(ctx, habit.ID)
}

func (s *service) GetHabit(ctx context.Context, id, userID uint) (*Habit, error) {
	return s.repo.FindByIDForUser(ctx, id, userID)
}

func (s *service) ListHabits(ctx context.Context, userID uint) ([]Habit, error) {
	return s.repo.FindAllByUser(ctx, userID)
}

func (s *service) UpdateHabit(ctx context.Context, id, userID uint, input UpdateHabitInput) (*Habit, error) {
	habit, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.Name != nil && *input.Name != habit.Name {
		if *input.Name == "" {
			return nil, ErrInvalidInput
		}
		habit.Name = *input.Name
		changed = true
	}
	if input.Description != nil && *input.Description != habit.Description {
		habit.Description = *input.Description
		changed = true
	}
	if input.Icon != nil && *input.Icon != habit.Icon {
		habit.Icon = *input.Icon
		changed = true
	}
	if input.Category != nil {
		category, err := s.repo.ResolveCategory(ctx, *input.Category)
		if err != nil {
			return nil, err
		}
		if category.ID != habit.CategoryID {
			habit.CategoryID = category.ID
			changed = true
		}
	}
	if input.Frequency != nil {
		frequency, err := s.repo.ResolveFrequency(ctx, *input.Frequency)
		if err != nil {
			return nil, err
		}
		if frequency.ID != habit.FrequencyID {
			habit.FrequencyID = frequency.ID
			changed = true
		}
	}
	if input.GoalQuantity != nil && *input.GoalQuantity != habit.Goal.Quantity {
		if *input.GoalQuantity <= 0 {
			return nil, ErrInvalidInput
		}
		habit.Goal.Quantity = *input.GoalQuantity
		changed = true
	}
	if input.GoalUnit != nil {
		unit, err := s.repo.ResolveUnit(ctx, *input.GoalUnit)
		if err != nil {
			return nil, err
		}
		if unit.ID != habit.Goal.UnitID {
			habit.Goal.UnitID = unit.ID
			changed = true
		}
	}
	if input.ReminderEnabled != nil && *input.ReminderEnabled != habit.ReminderEnabled {
		habit.ReminderEnabled = *input.ReminderEnabled
		changed = true
	}
	if input.ReminderTime != nil && *input.ReminderTime != habit.ReminderTime {
		if !reminderTimeRe.MatchString(*input.ReminderTime) {
			return nil, ErrInvalidInput
		}
		habit.ReminderTime = *input.ReminderTime
		changed = true
	}

	if !changed {
		return habit, nil
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.invalidateUserCache(ctx, userID)
	return s.repo.FindByID(ctx, habit.ID)
}

func (s *service) DeleteHabit(ctx context.Context, id, userID uint) error {
	if _, err := s.repo.FindByIDForUser(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateUserCache(ctx, userID)
	s.logger.Info("habit deleted", zap.Uint("habit_id", id), zap.Uint("user_id", userID))
	return nil
}

func (s *service) ListLookups(ctx context.Context) (*Lookups, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	frequencies, err := s.repo.ListFrequencies(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	return &Lookups{Categories: categories, Frequencies: frequencies, Units: units}, nil
}

func (s *service) RenameCategory(ctx context.Context, id uint, description string) (*Category, error) {
	row, err := s.repo.RenameCategory(ctx, id, description)
	if err != nil {
		return nil, err
	}
	s.invalidateLookupCache(ctx)
	return row, nil
}

func (s *service) RenameFrequency(ctx context.Context, id uint, description string) (*Frequency, error) {
	row, err := s.repo.RenameFrequency(ctx, id, description)
	if err != nil {
		return nil, err
	}
	s.invalidateLookupCache(ctx)
	return row, nil
}

func (s *service) RenameUnit(ctx context.Context, id uint, description string) (*Unit, error) {
	row, err := s.repo.RenameUnit(ctx, id, description)
	if err != nil {
		return nil, err
	}
	s.invalidateLookupCache(ctx)
	return row, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateLookupCache(ctx)
	return nil
}

func (s *service) DeleteFrequency(ctx context.Context, id uint) error {
	if err := s.repo.DeleteFrequency(ctx, id); err != nil {
		return err
	}
	s.invalidateLookupCache(ctx)
	return nil
}

func (s *service) DeleteUnit(ctx context.Context, id uint) error {
	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		return err
	}
	s.invalidateLookupCache(ctx)
	return nil
}

func (s *service) invalidateUserCache(ctx context.Context, userID uint) {
	if s.redis == nil {
		return
	}
	if err := s.redis.DeletePattern(ctx, "habits:*"); err != nil {
		s.logger.Error("failed to invalidate habit cache", zap.Error(err))
	}
}

func (s *service) invalidateLookupCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.DeletePattern(ctx, "lookups:*"); err != nil {
		s.logger.Error("failed to invalidate lookup cache", zap.Error(err))
	}
}
