package handlers

import (
	"net/http"

	"github.com/crisprlt/HabitFlow-sub000/internal/api/dto"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/todo"
	"github.com/gin-gonic/gin"
)

// TodoHandler serves to-do areas and their tasks. Every route carries a
// :userId segment which must match the authenticated caller.
type TodoHandler struct {
	service todo.Service
}

func NewTodoHandler(service todo.Service) *TodoHandler {
	return &TodoHandler{service: service}
}

func (h *TodoHandler) ListAreas(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}

	areas, err := h.service.ListAreas(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.AreasToResponse(areas)))
}

func (h *TodoHandler) CreateArea(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}

	var req dto.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	area, err := h.service.CreateArea(c.Request.Context(), todo.CreateAreaInput{
		UserID: userID,
		Name:   req.Name,
		Emoji:  req.Emoji,
		Color:  req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage("area created", dto.AreaToResponse(area)))
}

func (h *TodoHandler) UpdateArea(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}
	areaID, ok := uintParam(c, "areaId")
	if !ok {
		return
	}

	var req dto.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	area, err := h.service.UpdateArea(c.Request.Context(), areaID, userID, todo.UpdateAreaInput{
		Name:  req.Name,
		Emoji: req.Emoji,
		Color: req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("area updated", dto.AreaToResponse(area)))
}

// DeleteArea removes the area and all of its tasks.
func (h *TodoHandler) DeleteArea(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}
	areaID, ok := uintParam(c, "areaId")
	if !ok {
		return
	}

	if err := h.service.DeleteArea(c.Request.Context(), areaID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("area deleted", nil))
}

func (h *TodoHandler) ListTasks(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}
	areaID, ok := uintParam(c, "areaId")
	if !ok {
		return
	}

	area, err := h.service.GetArea(c.Request.Context(), areaID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.AreaToResponse(area)
	c.JSON(http.StatusOK, dto.OK(resp.Tasks))
}

func (h *TodoHandler) CreateTask(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}
	areaID, ok := uintParam(c, "areaId")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), todo.CreateTaskInput{
		AreaID:   areaID,
		UserID:   userID,
		Text:     req.Text,
		Priority: todo.TaskPriority(req.Priority),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage("task created", dto.TaskToResponse(task)))
}

// ToggleTask flips the completed flag.
func (h *TodoHandler) ToggleTask(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskId")
	if !ok {
		return
	}

	task, err := h.service.ToggleTask(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("task toggled", dto.TaskToResponse(task)))
}

func (h *TodoHandler) UpdateTask(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	input := todo.UpdateTaskInput{
		Text:      req.Text,
		Completed: req.Completed,
	}
	if req.Priority != nil {
		priority := todo.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.service.UpdateTask(c.Request.Context(), taskID, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("task updated", dto.TaskToResponse(task)))
}

func (h *TodoHandler) DeleteTask(c *gin.Context) {
	userID, ok := pathUserMustMatch(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("task deleted", nil))
}
