package todo

import "time"

// TaskPriority is the urgency bucket a task lives in. Values follow the
// client vocabulary.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "alta"
	PriorityMedium TaskPriority = "media"
	PriorityLow    TaskPriority = "baja"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Area is a user-defined grouping of tasks ("Trabajo", "Casa", ...), with
// cosmetic emoji and color for the client.
type Area struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_area_user" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Emoji     string    `gorm:"size:16" json:"emoji"`
	Color     string    `gorm:"size:32" json:"color"`
	CreatedAt time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`

	Tasks []Task `gorm:"foreignKey:AreaID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

func (Area) TableName() string {
	return "todo_areas"
}

// Task is a single to-do item inside an area.
type Task struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	AreaID    uint         `gorm:"not null;index:idx_task_area" json:"area_id"`
	Text      string       `gorm:"size:512;not null" json:"text"`
	Completed bool         `gorm:"not null;default:false" json:"completed"`
	Priority  TaskPriority `gorm:"type:varchar(16);not null;default:'media'" json:"priority"`
	CreatedAt time.Time    `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "todo_tasks"
}

// CreateAreaInput carries a new task area.
type CreateAreaInput struct {
	UserID uint
	Name   string
	Emoji  string
	Color  string
}

// UpdateAreaInput updates an area in place; nil fields are left untouched.
type UpdateAreaInput struct {
	Name  *string
	Emoji *string
	Color *string
}

// CreateTaskInput carries a new task. An empty priority defaults to media.
type CreateTaskInput struct {
	AreaID   uint
	UserID   uint
	Text     string
	Priority TaskPriority
}

// UpdateTaskInput updates a task in place; nil fields are left untouched.
type UpdateTaskInput struct {
	Text      *string
	Completed *bool
	Priority  *TaskPriority
}
