package user

import (
	"context"
	"errors"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrTokenNotFound = errors.New("reset token not found")
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByProvider(ctx context.Context, provider, providerID string) (*User, error)
	Update(ctx context.Context, user *User) error

	CreatePasswordReset(ctx context.Context, reset *PasswordReset) error
	FindPasswordReset(ctx context.Context, token string) (*PasswordReset, error)
	MarkPasswordResetUsed(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db.DB}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *repository) FindByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) CreatePasswordReset(ctx context.Context, reset *PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *repository) FindPasswordReset(ctx context.Context, token string) (*PasswordReset, error) {
	var reset PasswordReset
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&reset)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, result.Error
	}
	return &reset, nil
}

func (r *repository) MarkPasswordResetUsed(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&PasswordReset{}).
		Where("id = ?", id).
		Update("used_at", now).Error
}
