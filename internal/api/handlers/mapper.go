package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/crisprlt/HabitFlow-sub000/internal/api/dto"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/middleware"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/note"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/todo"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/tracking"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes. Anything unrecognized
// is a 500; ownership mismatches surface as 404 so resources belonging to
// other users stay invisible.
func statusFor(err error) int {
	switch {
	case errors.Is(err, habit.ErrHabitNotFound),
		errors.Is(err, habit.ErrLookupNotFound),
		errors.Is(err, note.ErrNoteNotFound),
		errors.Is(err, todo.ErrAreaNotFound),
		errors.Is(err, todo.ErrTaskNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, habit.ErrInvalidInput),
		errors.Is(err, note.ErrInvalidInput),
		errors.Is(err, todo.ErrInvalidInput),
		errors.Is(err, todo.ErrInvalidPriority),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, user.ErrResetTokenInvalid),
		errors.Is(err, tracking.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, habit.ErrLookupConflict),
		errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, dto.Error(message))
}

// uintParam parses a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("invalid "+name))
		return 0, false
	}
	return uint(value), true
}

// authedUser pulls the caller's ID set by the auth middleware.
func authedUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("user not authenticated"))
		return 0, false
	}
	return userID, true
}

// pathUserMustMatch enforces that the :userId path segment names the caller.
func pathUserMustMatch(c *gin.Context) (uint, bool) {
	userID, ok := authedUser(c)
	if !ok {
		return 0, false
	}
	pathID, ok := uintParam(c, "userId")
	if !ok {
		return 0, false
	}
	if pathID != userID {
		c.JSON(http.StatusForbidden, dto.Error("forbidden"))
		return 0, false
	}
	return userID, true
}
