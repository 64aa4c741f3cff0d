package note

import (
	"context"
	"errors"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")

type Repository interface {
	Create(ctx context.Context, note *Note) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*Note, error)
	FindByUserAndDate(ctx context.Context, userID uint, date time.Time) ([]Note, error)
	FindAllByUser(ctx context.Context, userID uint) ([]Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db.DB}
}

func (r *repository) Create(ctx context.Context, note *Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repository) FindByIDForUser(ctx context.Context, id, userID uint) (*Note, error) {
	var note Note
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&note)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, result.Error
	}
	return &note, nil
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) ([]Note, error) {
	var notes []Note
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND note_date = ?", userID, date).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID uint) ([]Note, error) {
	var notes []Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("note_date DESC, created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *repository) Update(ctx context.Context, note *Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
