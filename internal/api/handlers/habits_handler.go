package handlers

import (
	"net/http"

	"github.com/crisprlt/HabitFlow-sub000/internal/api/dto"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"
	"github.com/gin-gonic/gin"
)

// HabitsHandler handles habit CRUD and lookup maintenance.
type HabitsHandler struct {
	service habit.Service
}

func NewHabitsHandler(service habit.Service) *HabitsHandler {
	return &HabitsHandler{service: service}
}

// CreateHabit godoc
// @Summary Create a new habit
// @Tags habits
// @Security BearerAuth
// @Router /api/habit [post]
func (h *HabitsHandler) CreateHabit(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	created, err := h.service.CreateHabit(c.Request.Context(), habit.CreateHabitInput{
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		Icon:            req.Icon,
		Category:        req.Category,
		Frequency:       req.Frequency,
		GoalQuantity:    req.GoalQuantity,
		GoalUnit:        req.GoalUnit,
		ReminderEnabled: req.ReminderEnabled,
		ReminderTime:    req.ReminderTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage("habit created", dto.HabitToResponse(created)))
}

// ListHabits godoc
// @Summary List the caller's habits
// @Tags habits
// @Security BearerAuth
// @Router /api/habit [get]
func (h *HabitsHandler) ListHabits(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	habits, err := h.service.ListHabits(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.HabitsToResponse(habits)))
}

func (h *HabitsHandler) GetHabit(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetHabit(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.HabitToResponse(found)))
}

func (h *HabitsHandler) UpdateHabit(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	updated, err := h.service.UpdateHabit(c.Request.Context(), id, userID, habit.UpdateHabitInput{
		Name:            req.Name,
		Description:     req.Description,
		Icon:            req.Icon,
		Category:        req.Category,
		Frequency:       req.Frequency,
		GoalQuantity:    req.GoalQuantity,
		GoalUnit:        req.GoalUnit,
		ReminderEnabled: req.ReminderEnabled,
		ReminderTime:    req.ReminderTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("habit updated", dto.HabitToResponse(updated)))
}

// DeleteHabit removes the habit together with its goal and records.
func (h *HabitsHandler) DeleteHabit(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteHabit(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("habit deleted", nil))
}

// ListLookups returns the categories, frequencies and units for the habit
// creation form.
func (h *HabitsHandler) ListLookups(c *gin.Context) {
	lookups, err := h.service.ListLookups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(lookups))
}

func (h *HabitsHandler) RenameCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.RenameLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	row, err := h.service.RenameCategory(c.Request.Context(), id, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(row))
}

func (h *HabitsHandler) RenameFrequency(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.RenameLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	row, err := h.service.RenameFrequency(c.Request.Context(), id, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(row))
}

func (h *HabitsHandler) RenameUnit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.RenameLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	row, err := h.service.RenameUnit(c.Request.Context(), id, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(row))
}

func (h *HabitsHandler) DeleteCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("category deleted", nil))
}

func (h *HabitsHandler) DeleteFrequency(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteFrequency(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("frequency deleted", nil))
}

func (h *HabitsHandler) DeleteUnit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteUnit(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("unit deleted", nil))
}
