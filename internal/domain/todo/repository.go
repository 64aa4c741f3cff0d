package todo

import (
	"context"
	"errors"

	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
)

var (
	ErrAreaNotFound = errors.New("task area not found")
	ErrTaskNotFound = errors.New("task not found")
)

type Repository interface {
	CreateArea(ctx context.Context, area *Area) error
	FindAreaByIDForUser(ctx context.Context, id, userID uint) (*Area, error)
	FindAreasByUser(ctx context.Context, userID uint) ([]Area, error)
	UpdateArea(ctx context.Context, area *Area) error
	DeleteArea(ctx context.Context, id uint) error

	CreateTask(ctx context.Context, task *Task) error
	FindTaskByID(ctx context.Context, id uint) (*Task, error)
	FindTasksByArea(ctx context.Context, areaID uint) ([]Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db.DB}
}

func (r *repository) CreateArea(ctx context.Context, area *Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *repository) FindAreaByIDForUser(ctx context.Context, id, userID uint) (*Area, error) {
	var area Area
	result := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&area)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, result.Error
	}
	return &area, nil
}

func (r *repository) FindAreasByUser(ctx context.Context, userID uint) ([]Area, error) {
	var areas []Area
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&areas).Error
	return areas, err
}

func (r *repository) UpdateArea(ctx context.Context, area *Area) error {
	return r.db.WithContext(ctx).Omit("Tasks").Save(area).Error
}

// DeleteArea removes the area and its tasks in one transaction.
func (r *repository) DeleteArea(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", id).Delete(&Task{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Area{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAreaNotFound
		}
		return nil
	})
}

func (r *repository) CreateTask(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *repository) FindTaskByID(ctx context.Context, id uint) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *repository) FindTasksByArea(ctx context.Context, areaID uint) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("area_id = ?", areaID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) UpdateTask(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *repository) DeleteTask(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
