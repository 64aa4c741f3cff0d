package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"
	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines persistence for habit records and daily stats. WithTx
// runs fn against a repository bound to a single database transaction; the
// mutators use it so ownership check, upsert and derived-state refresh commit
// or roll back as one unit.
type Repository interface {
	WithTx(ctx context.Context, fn func(Repository) error) error

	GetHabitForUser(ctx context.Context, habitID, userID uint) (*habit.Habit, error)
	UpsertRecord(ctx context.Context, record *HabitRecord) error
	GetRecord(ctx context.Context, habitID uint, date time.Time) (*HabitRecord, error)
	CompletedDates(ctx context.Context, habitID uint, until time.Time) ([]time.Time, error)
	RecordsInRange(ctx context.Context, habitID uint, start, end time.Time) ([]HabitRecord, error)
	RecordsForUserOnDate(ctx context.Context, userID uint, date time.Time) (map[uint]HabitRecord, error)
	UpdateHabitStreak(ctx context.Context, habitID uint, streak int, lastCompleted *time.Time) error

	CountHabits(ctx context.Context, userID uint) (int64, error)
	CountCompleted(ctx context.Context, userID uint, date time.Time) (int64, error)
	MaxStreak(ctx context.Context, userID uint) (int, error)
	UpsertDailyStats(ctx context.Context, stats *DailyStats) error
	GetDailyStats(ctx context.Context, userID uint, date time.Time) (*DailyStats, error)

	HabitsWithActiveStreak(ctx context.Context) ([]habit.Habit, error)
	UserIDsWithHabits(ctx context.Context) ([]uint, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db.DB}
}

func (r *repository) WithTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) GetHabitForUser(ctx context.Context, habitID, userID uint) (*habit.Habit, error) {
	var h habit.Habit
	result := r.db.WithContext(ctx).
		Preload("Goal").
		Preload("Goal.Unit").
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&h)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, habit.ErrHabitNotFound
		}
		return nil, result.Error
	}
	return &h, nil
}

// UpsertRecord inserts or replaces the record for (habit_id, record_date).
// The conflict target is the unique index, so concurrent writers for the same
// day resolve to last-writer-wins instead of duplicating rows.
func (r *repository) UpsertRecord(ctx context.Context, record *HabitRecord) error {
	record.RecordDate = Day(record.RecordDate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "record_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "completed", "updated_at"}),
		}).
		Create(record).Error
}

func (r *repository) GetRecord(ctx context.Context, habitID uint, date time.Time) (*HabitRecord, error) {
	var record HabitRecord
	result := r.db.WithContext(ctx).
		Where("habit_id = ? AND record_date = ?", habitID, Day(date)).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &record, nil
}

func (r *repository) CompletedDates(ctx context.Context, habitID uint, until time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&HabitRecord{}).
		Where("habit_id = ? AND completed = ? AND record_date <= ?", habitID, true, Day(until)).
		Order("record_date DESC").
		Pluck("record_date", &dates).Error
	return dates, err
}

func (r *repository) RecordsInRange(ctx context.Context, habitID uint, start, end time.Time) ([]HabitRecord, error) {
	var records []HabitRecord
	err := r.db.WithContext(ctx).
		Where("habit_id = ? AND record_date BETWEEN ? AND ?", habitID, Day(start), Day(end)).
		Order("record_date ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) RecordsForUserOnDate(ctx context.Context, userID uint, date time.Time) (map[uint]HabitRecord, error) {
	var records []HabitRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN habits ON habits.id = habit_records.habit_id").
		Where("habits.user_id = ? AND habit_records.record_date = ?", userID, Day(date)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	byHabit := make(map[uint]HabitRecord, len(records))
	for _, rec := range records {
		byHabit[rec.HabitID] = rec
	}
	return byHabit, nil
}

// UpdateHabitStreak refreshes the denormalized streak cache on the habit row.
// The value always comes from a full recomputation, never from an increment.
func (r *repository) UpdateHabitStreak(ctx context.Context, habitID uint, streak int, lastCompleted *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&habit.Habit{}).
		Where("id = ?", habitID).
		Updates(map[string]interface{}{
			"current_streak": streak,
			"last_completed": lastCompleted,
		}).Error
}

func (r *repository) CountHabits(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&habit.Habit{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountCompleted(ctx context.Context, userID uint, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&HabitRecord{}).
		Joins("JOIN habits ON habits.id = habit_records.habit_id").
		Where("habits.user_id = ? AND habit_records.record_date = ? AND habit_records.completed = ?",
			userID, Day(date), true).
		Count(&count).Error
	return count, err
}

func (r *repository) MaxStreak(ctx context.Context, userID uint) (int, error) {
	var best int
	err := r.db.WithContext(ctx).
		Model(&habit.Habit{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(current_streak), 0)").
		Scan(&best).Error
	return best, err
}

func (r *repository) UpsertDailyStats(ctx context.Context, stats *DailyStats) error {
	stats.StatsDate = Day(stats.StatsDate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "stats_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_habits", "completed_habits", "completion_pct", "best_streak", "updated_at"}),
		}).
		Create(stats).Error
}

func (r *repository) GetDailyStats(ctx context.Context, userID uint, date time.Time) (*DailyStats, error) {
	var stats DailyStats
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND stats_date = ?", userID, Day(date)).
		First(&stats)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &stats, nil
}

func (r *repository) HabitsWithActiveStreak(ctx context.Context) ([]habit.Habit, error) {
	var habits []habit.Habit
	err := r.db.WithContext(ctx).
		Where("current_streak > 0").
		Find(&habits).Error
	return habits, err
}

func (r *repository) UserIDsWithHabits(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&habit.Habit{}).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
