package habit

import (
	"time"
)

// Category is a user-visible habit grouping ("Salud", "Deporte", ...).
// Descriptions are unique; rows are created on demand when a habit
// references a description that does not exist yet.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null;uniqueIndex:idx_category_description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Frequency is the cadence lookup ("diaria", "semanal", ...).
type Frequency struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null;uniqueIndex:idx_frequency_description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
}

func (Frequency) TableName() string {
	return "frequencies"
}

// Unit is the goal measurement lookup ("vasos", "minutos", "km", ...).
type Unit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null;uniqueIndex:idx_unit_description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
}

func (Unit) TableName() string {
	return "units"
}

// Habit is a user-defined recurring action. CurrentStreak and LastCompleted
// are denormalized caches maintained by the tracking service; reads that must
// be fresh recompute the streak from habit records instead.
type Habit struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index:idx_habit_user" json:"user_id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Description     string     `gorm:"type:text" json:"description"`
	Icon            string     `gorm:"size:64" json:"icon"`
	CategoryID      uint       `gorm:"not null" json:"category_id"`
	FrequencyID     uint       `gorm:"not null" json:"frequency_id"`
	ReminderEnabled bool       `gorm:"not null;default:false" json:"reminder_enabled"`
	ReminderTime    string     `gorm:"size:5" json:"reminder_time"` // HH:MM
	CurrentStreak   int        `gorm:"not null;default:0" json:"current_streak"`
	LastCompleted   *time.Time `gorm:"type:date" json:"last_completed,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`

	Category  Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Frequency Frequency `gorm:"foreignKey:FrequencyID" json:"frequency"`
	Goal      Goal      `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"goal"`
}

func (Habit) TableName() string {
	return "habits"
}

// Goal is the per-habit target: a quantity in some unit per day.
type Goal struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	HabitID  uint    `gorm:"not null;uniqueIndex:idx_goal_habit" json:"habit_id"`
	Quantity float64 `gorm:"not null;default:1" json:"quantity"`
	UnitID   uint    `gorm:"not null" json:"unit_id"`

	Unit Unit `gorm:"foreignKey:UnitID" json:"unit"`
}

func (Goal) TableName() string {
	return "goals"
}

// CreateHabitInput carries everything needed to create a habit. Lookup
// descriptions are resolved (get-or-create) inside the service.
type CreateHabitInput struct {
	UserID          uint
	Name            string
	Description     string
	Icon            string
	Category        string
	Frequency       string
	GoalQuantity    float64
	GoalUnit        string
	ReminderEnabled bool
	ReminderTime    string
}

// UpdateHabitInput updates a habit in place; nil fields are left untouched.
type UpdateHabitInput struct {
	Name            *string
	Description     *string
	Icon            *string
	Category        *string
	Frequency       *string
	GoalQuantity    *float64
	GoalUnit        *string
	ReminderEnabled *bool
	ReminderTime    *string
}
