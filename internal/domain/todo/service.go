package todo

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPriority = errors.New("invalid task priority")
)

// Service exposes to-do areas and the tasks inside them. All task access is
// scoped through the owning area, so ownership checks happen once at the
// area boundary.
type Service interface {
	CreateArea(ctx context.Context, input CreateAreaInput) (*Area, error)
	GetArea(ctx context.Context, id, userID uint) (*Area, error)
	ListAreas(ctx context.Context, userID uint) ([]Area, error)
	UpdateArea(ctx context.Context, id, userID uint, input UpdateAreaInput) (*Area, error)
	DeleteArea(ctx context.Context, id, userID uint) error

	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	UpdateTask(ctx context.Context, taskID, userID uint, input UpdateTaskInput) (*Task, error)
	ToggleTask(ctx context.Context, taskID, userID uint) (*Task, error)
	DeleteTask(ctx context.Context, taskID, userID uint) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateArea(ctx context.Context, input CreateAreaInput) (*Area, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	area := &Area{
		UserID: input.UserID,
		Name:   input.Name,
		Emoji:  input.Emoji,
		Color:  input.Color,
	}
	if err := s.repo.CreateArea(ctx, area); err != nil {
		return nil, err
	}

	s.logger.Info("task area created",
		zap.Uint("area_id", area.ID),
		zap.Uint("user_id", input.UserID))

	return area, nil
}

func (s *service) GetArea(ctx context.Context, id, userID uint) (*Area, error) {
	return s.repo.FindAreaByIDForUser(ctx, id, userID)
}

func (s *service) ListAreas(ctx context.Context, userID uint) ([]Area, error) {
	return s.repo.FindAreasByUser(ctx, userID)
}

func (s *service) UpdateArea(ctx context.Context, id, userID uint, input UpdateAreaInput) (*Area, error) {
	area, err := s.repo.FindAreaByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidInput
		}
		area.Name = *input.Name
	}
	if input.Emoji != nil {
		area.Emoji = *input.Emoji
	}
	if input.Color != nil {
		area.Color = *input.Color
	}

	if err := s.repo.UpdateArea(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *service) DeleteArea(ctx context.Context, id, userID uint) error {
	if _, err := s.repo.FindAreaByIDForUser(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteArea(ctx, id); err != nil {
		return err
	}
	s.logger.Info("task area deleted", zap.Uint("area_id", id), zap.Uint("user_id", userID))
	return nil
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrInvalidInput
	}
	if input.Priority == "" {
		input.Priority = PriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	if _, err := s.repo.FindAreaByIDForUser(ctx, input.AreaID, input.UserID); err != nil {
		return nil, err
	}

	task := &Task{
		AreaID:   input.AreaID,
		Text:     input.Text,
		Priority: input.Priority,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) UpdateTask(ctx context.Context, taskID, userID uint, input UpdateTaskInput) (*Task, error) {
	task, err := s.taskForUser(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		if strings.TrimSpace(*input.Text) == "" {
			return nil, ErrInvalidInput
		}
		task.Text = *input.Text
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) ToggleTask(ctx context.Context, taskID, userID uint) (*Task, error) {
	task, err := s.taskForUser(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, taskID, userID uint) error {
	if _, err := s.taskForUser(ctx, taskID, userID); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, taskID)
}

// taskForUser loads a task after verifying its area belongs to the user.
// A mismatch reads as not-found so foreign tasks stay invisible.
func (s *service) taskForUser(ctx context.Context, taskID, userID uint) (*Task, error) {
	task, err := s.repo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindAreaByIDForUser(ctx, task.AreaID, userID); err != nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
