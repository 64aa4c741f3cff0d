package habit

import (
	"context"
	"errors"

	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHabitNotFound  = errors.New("habit not found")
	ErrLookupNotFound = errors.New("lookup row not found")
	ErrLookupConflict = errors.New("lookup description already in use")
	ErrInvalidInput   = errors.New("invalid input")
)

// Repository defines habit persistence operations, including lookup
// (category/frequency/unit) maintenance.
type Repository interface {
	Create(ctx context.Context, habit *Habit) error
	FindByID(ctx context.Context, id uint) (*Habit, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*Habit, error)
	FindAllByUser(ctx context.Context, userID uint) ([]Habit, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id uint) error

	ResolveCategory(ctx context.Context, description string) (*Category, error)
	ResolveFrequency(ctx context.Context, description string) (*Frequency, error)
	ResolveUnit(ctx context.Context, description string) (*Unit, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListFrequencies(ctx context.Context) ([]Frequency, error)
	ListUnits(ctx context.Context) ([]Unit, error)
	RenameCategory(ctx context.Context, id uint, description string) (*Category, error)
	RenameFrequency(ctx context.Context, id uint, description string) (*Frequency, error)
	RenameUnit(ctx context.Context, id uint, description string) (*Unit, error)
	DeleteCategory(ctx context.Context, id uint) error
	DeleteFrequency(ctx context.Context, id uint) error
	DeleteUnit(ctx context.Context, id uint) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, habit *Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Habit, error) {
	var habit Habit
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Frequency").
		Preload("Goal").
		Preload("Goal.Unit").
		First(&habit, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, result.Error
	}
	return &habit, nil
}

// FindByIDForUser scopes the lookup to the owner. A habit owned by someone
// else reports not-found rather than forbidden so existence never leaks.
func (r *repository) FindByIDForUser(ctx context.Context, id, userID uint) (*Habit, error) {
	var habit Habit
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Frequency").
		Preload("Goal").
		Preload("Goal.Unit").
		Where("id = ? AND user_id = ?", id, userID).
		First(&habit)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, result.Error
	}
	return &habit, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID uint) ([]Habit, error) {
	var habits []Habit
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Frequency").
		Preload("Goal").
		Preload("Goal.Unit").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&habits).Error
	return habits, err
}

func (r *repository) Update(ctx context.Context, habit *Habit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Frequency", "Goal").Save(habit).Error; err != nil {
			return err
		}
		if habit.Goal.ID != 0 {
			if err := tx.Omit("Unit").Save(&habit.Goal).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the habit together with its goal and daily records.
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&Goal{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM habit_records WHERE habit_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&Habit{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrHabitNotFound
		}
		return nil
	})
}

// resolveLookup get-or-creates a row keyed by exact description. Insert with
// ON CONFLICT DO NOTHING, then re-read: two concurrent resolvers converge on
// the same row instead of racing a check-then-insert.
func resolveLookup[T any](ctx context.Context, db *gorm.DB, description string, row *T) error {
	if description == "" {
		return ErrInvalidInput
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Where("description = ?", description).First(row).Error
}

func (r *repository) ResolveCategory(ctx context.Context, description string) (*Category, error) {
	row := Category{Description: description}
	if err := resolveLookup(ctx, r.db.DB, description, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ResolveFrequency(ctx context.Context, description string) (*Frequency, error) {
	row := Frequency{Description: description}
	if err := resolveLookup(ctx, r.db.DB, description, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ResolveUnit(ctx context.Context, description string) (*Unit, error) {
	row := Unit{Description: description}
	if err := resolveLookup(ctx, r.db.DB, description, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var rows []Category
	err := r.db.WithContext(ctx).Order("description ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListFrequencies(ctx context.Context) ([]Frequency, error) {
	var rows []Frequency
	err := r.db.WithContext(ctx).Order("description ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListUnits(ctx context.Context) ([]Unit, error) {
	var rows []Unit
	err := r.db.WithContext(ctx).Order("description ASC").Find(&rows).Error
	return rows, err
}

// renameLookup updates a lookup row's description, failing with
// ErrLookupConflict when a different row already holds the new description.
func renameLookup[T any](ctx context.Context, db *gorm.DB, id uint, description string, model *T) error {
	if description == "" {
		return ErrInvalidInput
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLookupNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(model).
			Where("description = ? AND id <> ?", description, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrLookupConflict
		}
		return tx.Model(model).Where("id = ?", id).Update("description", description).Error
	})
}

func (r *repository) RenameCategory(ctx context.Context, id uint, description string) (*Category, error) {
	var row Category
	if err := renameLookup(ctx, r.db.DB, id, description, &row); err != nil {
		return nil, err
	}
	row.Description = description
	return &row, nil
}

func (r *repository) RenameFrequency(ctx context.Context, id uint, description string) (*Frequency, error) {
	var row Frequency
	if err := renameLookup(ctx, r.db.DB, id, description, &row); err != nil {
		return nil, err
	}
	row.Description = description
	return &row, nil
}

func (r *repository) RenameUnit(ctx context.Context, id uint, description string) (*Unit, error) {
	var row Unit
	if err := renameLookup(ctx, r.db.DB, id, description, &row); err != nil {
		return nil, err
	}
	row.Description = description
	return &row, nil
}

func (r *repository) DeleteCategory(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLookupNotFound
	}
	return nil
}

func (r *repository) DeleteFrequency(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Frequency{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLookupNotFound
	}
	return nil
}

func (r *repository) DeleteUnit(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Unit{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLookupNotFound
	}
	return nil
}
