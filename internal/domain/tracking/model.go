package tracking

import (
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"
)

// HabitRecord is the single per-day observation of progress toward a habit's
// goal. The (habit_id, record_date) pair is unique; every write for the same
// day overwrites value/completed instead of adding a row.
type HabitRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HabitID    uint      `gorm:"not null;uniqueIndex:idx_habit_record_day,priority:1;index" json:"habit_id"`
	RecordDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_habit_record_day,priority:2" json:"record_date"`
	Value      float64   `gorm:"not null;default:0" json:"value"`
	Completed  bool      `gorm:"not null;default:false" json:"completed"`
	UpdatedAt  time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

func (HabitRecord) TableName() string {
	return "habit_records"
}

// DailyStats is the per-user-per-day rollup of completion counts. It is a
// cache derived from habits and habit records, refreshed after every mutation
// that could change the counts, and always recomputable.
type DailyStats struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_daily_stats_user_day,priority:1" json:"user_id"`
	StatsDate       time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_stats_user_day,priority:2" json:"stats_date"`
	TotalHabits     int       `gorm:"not null;default:0" json:"total_habits"`
	CompletedHabits int       `gorm:"not null;default:0" json:"completed_habits"`
	CompletionPct   float64   `gorm:"not null;default:0" json:"completion_pct"`
	BestStreak      int       `gorm:"not null;default:0" json:"best_streak"`
	UpdatedAt       time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

func (DailyStats) TableName() string {
	return "daily_stats"
}

// ToggleInput marks a habit complete or incomplete for a date. Value, when
// nil, falls back to the habit's goal quantity on completion and 0 otherwise.
type ToggleInput struct {
	HabitID   uint
	UserID    uint
	Date      time.Time // zero means today
	Completed bool
	Value     *float64
}

// ProgressInput records a measured value; completion is derived from the
// habit's goal quantity.
type ProgressInput struct {
	HabitID uint
	UserID  uint
	Date    time.Time // zero means today
	Value   float64
}

// UpdatedView is what mutators return: the record as stored plus the freshly
// recomputed streak.
type UpdatedView struct {
	HabitID   uint      `json:"habit_id"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	Completed bool      `json:"completed"`
	Streak    int       `json:"streak"`
}

// DashboardHabit is one habit joined with its record for the requested day
// and a recomputed streak. Missing record reads as value 0 / not completed.
type DashboardHabit struct {
	Habit          habit.Habit `json:"habit"`
	TodayValue     float64     `json:"today_value"`
	TodayCompleted bool        `json:"today_completed"`
	Streak         int         `json:"streak"`
}

// Dashboard is the tracking read-side view for one user and date.
type Dashboard struct {
	Date   time.Time        `json:"date"`
	Habits []DashboardHabit `json:"habits"`
	Stats  DailyStats       `json:"stats"`
}

// RangeStats aggregates one habit's records over an inclusive date range.
type RangeStats struct {
	HabitID        uint          `json:"habit_id"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	DaysTracked    int           `json:"days_tracked"`
	DaysCompleted  int           `json:"days_completed"`
	TotalValue     float64       `json:"total_value"`
	CompletionRate float64       `json:"completion_rate"` // completed days / days in range, 0..1
	BestStreak     int           `json:"best_streak"`     // longest completed run inside the range
	Records        []HabitRecord `json:"records"`
}

// Day truncates t to a calendar date in UTC. Every record and stats row is
// keyed on day granularity, so all date math funnels through here.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return Day(time.Now())
}
