package note

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid note input")

type Service interface {
	CreateNote(ctx context.Context, input CreateNoteInput) (*Note, error)
	GetNote(ctx context.Context, id, userID uint) (*Note, error)
	ListNotes(ctx context.Context, userID uint) ([]Note, error)
	ListNotesForDate(ctx context.Context, userID uint, date time.Time) ([]Note, error)
	UpdateNote(ctx context.Context, id, userID uint, input UpdateNoteInput) (*Note, error)
	DeleteNote(ctx context.Context, id, userID uint) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) CreateNote(ctx context.Context, input CreateNoteInput) (*Note, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrInvalidInput
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	note := &Note{
		UserID:   input.UserID,
		NoteDate: day(date),
		Content:  input.Content,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		zap.Uint("note_id", note.ID),
		zap.Uint("user_id", input.UserID))

	return note, nil
}

func (s *service) GetNote(ctx context.Context, id, userID uint) (*Note, error) {
	return s.repo.FindByIDForUser(ctx, id, userID)
}

func (s *service) ListNotes(ctx context.Context, userID uint) ([]Note, error) {
	return s.repo.FindAllByUser(ctx, userID)
}

func (s *service) ListNotesForDate(ctx context.Context, userID uint, date time.Time) ([]Note, error) {
	return s.repo.FindByUserAndDate(ctx, userID, day(date))
}

func (s *service) UpdateNote(ctx context.Context, id, userID uint, input UpdateNoteInput) (*Note, error) {
	note, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.Content != nil && *input.Content != note.Content {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, ErrInvalidInput
		}
		note.Content = *input.Content
		changed = true
	}
	if input.Date != nil {
		d := day(*input.Date)
		if !d.Equal(note.NoteDate) {
			note.NoteDate = d
			changed = true
		}
	}

	if !changed {
		return note, nil
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *service) DeleteNote(ctx context.Context, id, userID uint) error {
	if _, err := s.repo.FindByIDForUser(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
