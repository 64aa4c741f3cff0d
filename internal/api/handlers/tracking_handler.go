package handlers

import (
	"net/http"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/api/dto"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/middleware"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/note"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/tracking"
	"github.com/gin-gonic/gin"
)

// TrackingHandler serves the progress mutators, the dashboard and the
// calendar reads. The dashboard composes the day's notes at this level so
// the tracking domain stays independent of the notes domain.
type TrackingHandler struct {
	tracking tracking.Service
	notes    note.Service
}

func NewTrackingHandler(trackingService tracking.Service, noteService note.Service) *TrackingHandler {
	return &TrackingHandler{tracking: trackingService, notes: noteService}
}

// ToggleHabit godoc
// @Summary Mark a habit complete or incomplete for a date
// @Tags tracking
// @Security BearerAuth
// @Router /api/tracking/habits/toggle [post]
func (h *TrackingHandler) ToggleHabit(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.ToggleHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("invalid date, expected YYYY-MM-DD"))
		return
	}

	view, err := h.tracking.Toggle(c.Request.Context(), tracking.ToggleInput{
		HabitID:   req.HabitID,
		UserID:    userID,
		Date:      date,
		Completed: req.Completed,
		Value:     req.Value,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.CountHabitToggle()
	c.JSON(http.StatusOK, dto.OKMessage("habit updated", dto.RecordToResponse(view)))
}

// UpdateProgress godoc
// @Summary Record a measured value toward a habit's goal
// @Tags tracking
// @Security BearerAuth
// @Router /api/tracking/habits/progress [put]
func (h *TrackingHandler) UpdateProgress(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("invalid date, expected YYYY-MM-DD"))
		return
	}

	view, err := h.tracking.UpdateProgress(c.Request.Context(), tracking.ProgressInput{
		HabitID: req.HabitID,
		UserID:  userID,
		Date:    date,
		Value:   req.Value,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("progress updated", dto.RecordToResponse(view)))
}

// GetDashboard godoc
// @Summary The day's habits, stats and notes for one user
// @Tags tracking
// @Security BearerAuth
// @Router /api/tracking/dashboard/{userId} [get]
func (h *TrackingHandler) GetDashboard(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}

	date, err := dto.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("invalid date, expected YYYY-MM-DD"))
		return
	}

	dashboard, err := h.tracking.GetDashboard(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.DashboardToResponse(dashboard)

	notes, err := h.notes.ListNotesForDate(c.Request.Context(), userID, dashboard.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Notes = dto.NotesToResponse(notes)

	c.JSON(http.StatusOK, dto.OK(resp))
}

// GetStreak recomputes the streak for one habit from its records.
func (h *TrackingHandler) GetStreak(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	habitID, ok := uintParam(c, "habitId")
	if !ok {
		return
	}

	streak, err := h.tracking.ComputeStreak(c.Request.Context(), habitID, userID, time.Time{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"habit_id": habitID, "streak": streak}))
}

// GetRangeStats aggregates a habit's records over ?startDate&endDate.
func (h *TrackingHandler) GetRangeStats(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	habitID, ok := uintParam(c, "habitId")
	if !ok {
		return
	}

	start, err := dto.ParseDate(c.Query("startDate"))
	if err != nil || start.IsZero() {
		c.JSON(http.StatusBadRequest, dto.Error("startDate is required as YYYY-MM-DD"))
		return
	}
	end, err := dto.ParseDate(c.Query("endDate"))
	if err != nil || end.IsZero() {
		c.JSON(http.StatusBadRequest, dto.Error("endDate is required as YYYY-MM-DD"))
		return
	}

	stats, err := h.tracking.GetRangeStats(c.Request.Context(), habitID, userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.RangeStatsToResponse(stats)))
}

// GetMonth returns the records of one habit for ?month=YYYY-MM (defaults to
// the current month), for the calendar view.
func (h *TrackingHandler) GetMonth(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	habitID, ok := uintParam(c, "habitId")
	if !ok {
		return
	}

	month := time.Now().UTC()
	if q := c.Query("month"); q != "" {
		parsed, err := time.ParseInLocation("2006-01", q, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("invalid month, expected YYYY-MM"))
			return
		}
		month = parsed
	}

	records, err := h.tracking.GetMonthRecords(c.Request.Context(), habitID, userID, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{
		"habit_id": habitID,
		"month":    month.Format("2006-01"),
		"records":  dto.MonthRecordsToResponse(records),
	}))
}
