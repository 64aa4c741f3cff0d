package note

import "time"

// Note is a free-form journal entry attached to a user and a calendar date.
// A user may keep several notes for the same day.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_note_user_date,priority:1" json:"user_id"`
	NoteDate  time.Time `gorm:"type:date;not null;index:idx_note_user_date,priority:2" json:"note_date"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}

// CreateNoteInput carries a new note. Date zero means today.
type CreateNoteInput struct {
	UserID  uint
	Date    time.Time
	Content string
}

// UpdateNoteInput updates a note in place; nil fields are left untouched.
type UpdateNoteInput struct {
	Date    *time.Time
	Content *string
}
