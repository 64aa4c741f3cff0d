package tracking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"
	"go.uber.org/zap"
)

var ErrInvalidRange = errors.New("invalid date range")

// Service is the habit progress core: the two mutators, the streak
// calculator, the daily stats aggregator and the dashboard read.
type Service interface {
	Toggle(ctx context.Context, input ToggleInput) (*UpdatedView, error)
	UpdateProgress(ctx context.Context, input ProgressInput) (*UpdatedView, error)
	ComputeStreak(ctx context.Context, habitID, userID uint, today time.Time) (int, error)
	RefreshDailyStats(ctx context.Context, userID uint, date time.Time) (*DailyStats, error)
	GetDashboard(ctx context.Context, userID uint, date time.Time) (*Dashboard, error)
	GetRangeStats(ctx context.Context, habitID, userID uint, start, end time.Time) (*RangeStats, error)
	GetMonthRecords(ctx context.Context, habitID, userID uint, month time.Time) ([]HabitRecord, error)
	ReconcileDerivedState(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	habitRepo habit.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, habitRepo habit.Repository, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		habitRepo: habitRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Toggle marks a habit complete or incomplete for a date. Ownership check,
// record upsert, streak recomputation and stats refresh run in one
// transaction: a failure anywhere leaves no partial write behind.
func (s *service) Toggle(ctx context.Context, input ToggleInput) (*UpdatedView, error) {
	date := input.Date
	if date.IsZero() {
		date = Day(s.now())
	} else {
		date = Day(date)
	}

	var view *UpdatedView
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		h, err := tx.GetHabitForUser(ctx, input.HabitID, input.UserID)
		if err != nil {
			return err
		}

		value := effectiveValue(input.Value, input.Completed, h.Goal.Quantity)

		record := &HabitRecord{
			HabitID:    input.HabitID,
			RecordDate: date,
			Value:      value,
			Completed:  input.Completed,
		}
		if err := tx.UpsertRecord(ctx, record); err != nil {
			return err
		}

		streak, err := refreshStreakCache(ctx, tx, input.HabitID, Day(s.now()))
		if err != nil {
			return err
		}

		if _, err := refreshDailyStats(ctx, tx, input.UserID, date); err != nil {
			return err
		}

		view = &UpdatedView{
			HabitID:   input.HabitID,
			Date:      date,
			Value:     value,
			Completed: input.Completed,
			Streak:    streak,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("habit toggled",
		zap.Uint("habit_id", input.HabitID),
		zap.Uint("user_id", input.UserID),
		zap.Bool("completed", view.Completed),
		zap.Float64("value", view.Value),
		zap.Int("streak", view.Streak))

	return view, nil
}

// UpdateProgress records a measured value; the completed flag is derived by
// comparing against the habit's goal quantity.
func (s *service) UpdateProgress(ctx context.Context, input ProgressInput) (*UpdatedView, error) {
	date := input.Date
	if date.IsZero() {
		date = Day(s.now())
	} else {
		date = Day(date)
	}

	if input.Value < 0 {
		return nil, habit.ErrInvalidInput
	}

	var view *UpdatedView
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		h, err := tx.GetHabitForUser(ctx, input.HabitID, input.UserID)
		if err != nil {
			return err
		}

		completed := input.Value >= h.Goal.Quantity

		record := &HabitRecord{
			HabitID:    input.HabitID,
			RecordDate: date,
			Value:      input.Value,
			Completed:  completed,
		}
		if err := tx.UpsertRecord(ctx, record); err != nil {
			return err
		}

		streak, err := refreshStreakCache(ctx, tx, input.HabitID, Day(s.now()))
		if err != nil {
			return err
		}

		if _, err := refreshDailyStats(ctx, tx, input.UserID, date); err != nil {
			return err
		}

		view = &UpdatedView{
			HabitID:   input.HabitID,
			Date:      date,
			Value:     input.Value,
			Completed: completed,
			Streak:    streak,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// ComputeStreak recomputes the consecutive-day streak from habit records.
// The stored current_streak column is a cache and is never consulted here.
func (s *service) ComputeStreak(ctx context.Context, habitID, userID uint, today time.Time) (int, error) {
	if _, err := s.repo.GetHabitForUser(ctx, habitID, userID); err != nil {
		return 0, err
	}
	if today.IsZero() {
		today = s.now()
	}
	dates, err := s.repo.CompletedDates(ctx, habitID, today)
	if err != nil {
		return 0, err
	}
	return streakFrom(completedSet(dates), today), nil
}

// RefreshDailyStats recomputes and upserts the snapshot for (user, date).
// Idempotent: repeated calls over unchanged data store identical values.
func (s *service) RefreshDailyStats(ctx context.Context, userID uint, date time.Time) (*DailyStats, error) {
	if date.IsZero() {
		date = s.now()
	}
	return refreshDailyStats(ctx, s.repo, userID, date)
}

// GetDashboard joins every habit with its record for the date (missing reads
// as 0/false), attaches a freshly computed streak per habit, and refreshes
// the stats snapshot synchronously so the response is never stale.
func (s *service) GetDashboard(ctx context.Context, userID uint, date time.Time) (*Dashboard, error) {
	if date.IsZero() {
		date = s.now()
	}
	date = Day(date)

	habits, err := s.habitRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.RecordsForUserOnDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	items := make([]DashboardHabit, 0, len(habits))
	for _, h := range habits {
		item := DashboardHabit{Habit: h}
		if rec, ok := records[h.ID]; ok {
			item.TodayValue = rec.Value
			item.TodayCompleted = rec.Completed
		}

		dates, err := s.repo.CompletedDates(ctx, h.ID, date)
		if err != nil {
			return nil, err
		}
		item.Streak = streakFrom(completedSet(dates), date)

		items = append(items, item)
	}

	stats, err := refreshDailyStats(ctx, s.repo, userID, date)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Date:   date,
		Habits: items,
		Stats:  *stats,
	}, nil
}

// GetRangeStats aggregates one habit's records over an inclusive range.
func (s *service) GetRangeStats(ctx context.Context, habitID, userID uint, start, end time.Time) (*RangeStats, error) {
	if _, err := s.repo.GetHabitForUser(ctx, habitID, userID); err != nil {
		return nil, err
	}

	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	records, err := s.repo.RecordsInRange(ctx, habitID, start, end)
	if err != nil {
		return nil, err
	}

	stats := &RangeStats{
		HabitID:   habitID,
		StartDate: start,
		EndDate:   end,
		Records:   records,
	}

	var completedDates []time.Time
	for _, rec := range records {
		stats.DaysTracked++
		stats.TotalValue += rec.Value
		if rec.Completed {
			stats.DaysCompleted++
			completedDates = append(completedDates, rec.RecordDate)
		}
	}

	daysInRange := int(end.Sub(start).Hours()/24) + 1
	if daysInRange > 0 {
		stats.CompletionRate = round2(float64(stats.DaysCompleted) / float64(daysInRange))
	}
	stats.BestStreak = bestRun(completedSet(completedDates))

	return stats, nil
}

// GetMonthRecords returns all records for one calendar month, for the
// client-side calendar view. month is any date inside the month.
func (s *service) GetMonthRecords(ctx context.Context, habitID, userID uint, month time.Time) ([]HabitRecord, error) {
	if _, err := s.repo.GetHabitForUser(ctx, habitID, userID); err != nil {
		return nil, err
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.repo.RecordsInRange(ctx, habitID, first, last)
}

// ReconcileDerivedState recomputes the streak cache for habits whose stored
// streak may have gone stale overnight, and refreshes yesterday's stats
// snapshots. Run by the scheduler at midnight; returns the number of habit
// rows corrected.
func (s *service) ReconcileDerivedState(ctx context.Context) (int64, error) {
	today := Day(s.now())

	habits, err := s.repo.HabitsWithActiveStreak(ctx)
	if err != nil {
		return 0, err
	}

	var corrected int64
	for _, h := range habits {
		dates, err := s.repo.CompletedDates(ctx, h.ID, today)
		if err != nil {
			s.logger.Error("failed to load completed dates during reconciliation",
				zap.Uint("habit_id", h.ID), zap.Error(err))
			continue
		}
		fresh := streakFrom(completedSet(dates), today)
		if fresh != h.CurrentStreak {
			if err := s.repo.UpdateHabitStreak(ctx, h.ID, fresh, latestCompleted(dates)); err != nil {
				s.logger.Error("failed to refresh streak cache",
					zap.Uint("habit_id", h.ID), zap.Error(err))
				continue
			}
			corrected++
		}
	}

	yesterday := today.AddDate(0, 0, -1)
	userIDs, err := s.repo.UserIDsWithHabits(ctx)
	if err != nil {
		return corrected, err
	}
	for _, userID := range userIDs {
		if _, err := refreshDailyStats(ctx, s.repo, userID, yesterday); err != nil {
			s.logger.Error("failed to refresh daily stats during reconciliation",
				zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	return corrected, nil
}

// effectiveValue applies the toggle value rules: an explicit value wins; a
// completion without value records the goal quantity; an un-completion
// without value records 0.
func effectiveValue(explicit *float64, completed bool, goalQuantity float64) float64 {
	if explicit != nil {
		return *explicit
	}
	if completed {
		return goalQuantity
	}
	return 0
}

// refreshStreakCache recomputes the streak from records and writes it back to
// the habit row's cache columns, returning the fresh value.
func refreshStreakCache(ctx context.Context, repo Repository, habitID uint, today time.Time) (int, error) {
	dates, err := repo.CompletedDates(ctx, habitID, today)
	if err != nil {
		return 0, err
	}
	streak := streakFrom(completedSet(dates), today)
	if err := repo.UpdateHabitStreak(ctx, habitID, streak, latestCompleted(dates)); err != nil {
		return 0, err
	}
	return streak, nil
}

// refreshDailyStats recomputes total/completed/percentage for (user, date)
// and upserts the snapshot. percentage is 0 when the user has no habits.
func refreshDailyStats(ctx context.Context, repo Repository, userID uint, date time.Time) (*DailyStats, error) {
	total, err := repo.CountHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := repo.CountCompleted(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	best, err := repo.MaxStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	pct := 0.0
	if total > 0 {
		pct = round2(float64(completed) / float64(total) * 100)
	}

	stats := &DailyStats{
		UserID:          userID,
		StatsDate:       Day(date),
		TotalHabits:     int(total),
		CompletedHabits: int(completed),
		CompletionPct:   pct,
		BestStreak:      best,
	}
	if err := repo.UpsertDailyStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
