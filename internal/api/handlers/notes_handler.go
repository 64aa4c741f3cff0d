package handlers

import (
	"net/http"

	"github.com/crisprlt/HabitFlow-sub000/internal/api/dto"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/note"
	"github.com/gin-gonic/gin"
)

type NotesHandler struct {
	service note.Service
}

func NewNotesHandler(service note.Service) *NotesHandler {
	return &NotesHandler{service: service}
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("invalid date, expected YYYY-MM-DD"))
		return
	}

	created, err := h.service.CreateNote(c.Request.Context(), note.CreateNoteInput{
		UserID:  userID,
		Date:    date,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage("note created", dto.NoteToResponse(created)))
}

func (h *NotesHandler) ListNotes(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	if q := c.Query("date"); q != "" {
		date, err := dto.ParseDate(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("invalid date, expected YYYY-MM-DD"))
			return
		}
		notes, err := h.service.ListNotesForDate(c.Request.Context(), userID, date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.NotesToResponse(notes)))
		return
	}

	notes, err := h.service.ListNotes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.NotesToResponse(notes)))
}

func (h *NotesHandler) UpdateNote(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "noteId")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	input := note.UpdateNoteInput{Content: req.Content}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("invalid date, expected YYYY-MM-DD"))
			return
		}
		input.Date = &date
	}

	updated, err := h.service.UpdateNote(c.Request.Context(), id, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("note updated", dto.NoteToResponse(updated)))
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "noteId")
	if !ok {
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("note deleted", nil))
}
