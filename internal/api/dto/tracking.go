package dto

import "github.com/crisprlt/HabitFlow-sub000/internal/domain/tracking"

// ToggleHabitRequest marks a habit done or not done for a date. Date empty
// means today; Value empty falls back to the habit's goal quantity when
// completing.
type ToggleHabitRequest struct {
	HabitID   uint     `json:"habit_id" binding:"required"`
	Completed bool     `json:"completed"`
	Date      string   `json:"date,omitempty"`
	Value     *float64 `json:"value,omitempty"`
}

// UpdateProgressRequest records a measured value for a date.
type UpdateProgressRequest struct {
	HabitID uint    `json:"habit_id" binding:"required"`
	Value   float64 `json:"value" binding:"gte=0"`
	Date    string  `json:"date,omitempty"`
}

// RecordResponse is the stored record plus the recomputed streak.
type RecordResponse struct {
	HabitID   uint    `json:"habit_id"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Completed bool    `json:"completed"`
	Streak    int     `json:"streak"`
}

func RecordToResponse(v *tracking.UpdatedView) RecordResponse {
	return RecordResponse{
		HabitID:   v.HabitID,
		Date:      FormatDate(v.Date),
		Value:     v.Value,
		Completed: v.Completed,
		Streak:    v.Streak,
	}
}

type DailyStatsResponse struct {
	Date            string  `json:"date"`
	TotalHabits     int     `json:"total_habits"`
	CompletedHabits int     `json:"completed_habits"`
	CompletionPct   float64 `json:"completion_pct"`
	BestStreak      int     `json:"best_streak"`
}

func DailyStatsToResponse(s *tracking.DailyStats) DailyStatsResponse {
	return DailyStatsResponse{
		Date:            FormatDate(s.StatsDate),
		TotalHabits:     s.TotalHabits,
		CompletedHabits: s.CompletedHabits,
		CompletionPct:   s.CompletionPct,
		BestStreak:      s.BestStreak,
	}
}

// DashboardHabitResponse joins a habit with its state for the requested day.
type DashboardHabitResponse struct {
	Habit          HabitResponse `json:"habit"`
	TodayValue     float64       `json:"today_value"`
	TodayCompleted bool          `json:"today_completed"`
	Streak         int           `json:"streak"`
}

type DashboardResponse struct {
	Date   string                   `json:"date"`
	Habits []DashboardHabitResponse `json:"habits"`
	Stats  DailyStatsResponse       `json:"stats"`
	Notes  []NoteResponse           `json:"notes"`
}

func DashboardToResponse(d *tracking.Dashboard) DashboardResponse {
	habits := make([]DashboardHabitResponse, 0, len(d.Habits))
	for i := range d.Habits {
		item := &d.Habits[i]
		habits = append(habits, DashboardHabitResponse{
			Habit:          HabitToResponse(&item.Habit),
			TodayValue:     item.TodayValue,
			TodayCompleted: item.TodayCompleted,
			Streak:         item.Streak,
		})
	}
	return DashboardResponse{
		Date:   FormatDate(d.Date),
		Habits: habits,
		Stats:  DailyStatsToResponse(&d.Stats),
		Notes:  []NoteResponse{},
	}
}

type RangeStatsResponse struct {
	HabitID        uint                `json:"habit_id"`
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	DaysTracked    int                 `json:"days_tracked"`
	DaysCompleted  int                 `json:"days_completed"`
	TotalValue     float64             `json:"total_value"`
	CompletionRate float64             `json:"completion_rate"`
	BestStreak     int                 `json:"best_streak"`
	Records        []DayRecordResponse `json:"records"`
}

type DayRecordResponse struct {
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Completed bool    `json:"completed"`
}

func RangeStatsToResponse(s *tracking.RangeStats) RangeStatsResponse {
	records := make([]DayRecordResponse, 0, len(s.Records))
	for _, rec := range s.Records {
		records = append(records, DayRecordResponse{
			Date:      FormatDate(rec.RecordDate),
			Value:     rec.Value,
			Completed: rec.Completed,
		})
	}
	return RangeStatsResponse{
		HabitID:        s.HabitID,
		StartDate:      FormatDate(s.StartDate),
		EndDate:        FormatDate(s.EndDate),
		DaysTracked:    s.DaysTracked,
		DaysCompleted:  s.DaysCompleted,
		TotalValue:     s.TotalValue,
		CompletionRate: s.CompletionRate,
		BestStreak:     s.BestStreak,
		Records:        records,
	}
}

func MonthRecordsToResponse(records []tracking.HabitRecord) []DayRecordResponse {
	out := make([]DayRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, DayRecordResponse{
			Date:      FormatDate(rec.RecordDate),
			Value:     rec.Value,
			Completed: rec.Completed,
		})
	}
	return out
}
