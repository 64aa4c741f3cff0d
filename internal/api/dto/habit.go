package dto

import "github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"

// CreateHabitRequest carries a new habit. Category, frequency and unit are
// free-text descriptions resolved (get-or-create) server side.
type CreateHabitRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Icon            string  `json:"icon"`
	Category        string  `json:"category" binding:"required"`
	Frequency       string  `json:"frequency" binding:"required"`
	GoalQuantity    float64 `json:"goal_quantity" binding:"required,gt=0"`
	GoalUnit        string  `json:"goal_unit" binding:"required"`
	ReminderEnabled bool    `json:"reminder_enabled"`
	ReminderTime    string  `json:"reminder_time"`
}

type UpdateHabitRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Icon            *string  `json:"icon,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Frequency       *string  `json:"frequency,omitempty"`
	GoalQuantity    *float64 `json:"goal_quantity,omitempty"`
	GoalUnit        *string  `json:"goal_unit,omitempty"`
	ReminderEnabled *bool    `json:"reminder_enabled,omitempty"`
	ReminderTime    *string  `json:"reminder_time,omitempty"`
}

type RenameLookupRequest struct {
	Description string `json:"description" binding:"required"`
}

// HabitResponse flattens a habit with its resolved lookups and goal.
type HabitResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Icon            string  `json:"icon,omitempty"`
	Category        string  `json:"category"`
	Frequency       string  `json:"frequency"`
	GoalQuantity    float64 `json:"goal_quantity"`
	GoalUnit        string  `json:"goal_unit"`
	ReminderEnabled bool    `json:"reminder_enabled"`
	ReminderTime    string  `json:"reminder_time,omitempty"`
	CurrentStreak   int     `json:"current_streak"`
	LastCompleted   string  `json:"last_completed,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func HabitToResponse(h *habit.Habit) HabitResponse {
	resp := HabitResponse{
		ID:              h.ID,
		Name:            h.Name,
		Description:     h.Description,
		Icon:            h.Icon,
		Category:        h.Category.Description,
		Frequency:       h.Frequency.Description,
		GoalQuantity:    h.Goal.Quantity,
		GoalUnit:        h.Goal.Unit.Description,
		ReminderEnabled: h.ReminderEnabled,
		ReminderTime:    h.ReminderTime,
		CurrentStreak:   h.CurrentStreak,
		CreatedAt:       FormatDate(h.CreatedAt),
	}
	if h.LastCompleted != nil {
		resp.LastCompleted = FormatDate(*h.LastCompleted)
	}
	return resp
}

func HabitsToResponse(habits []habit.Habit) []HabitResponse {
	out := make([]HabitResponse, 0, len(habits))
	for i := range habits {
		out = append(out, HabitToResponse(&habits[i]))
	}
	return out
}
