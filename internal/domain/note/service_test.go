package note

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	notes  map[uint]*Note
	nextID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{notes: make(map[uint]*Note)}
}

func (m *mockRepository) Create(_ context.Context, note *Note) error {
	m.nextID++
	note.ID = m.nextID
	clone := *note
	m.notes[note.ID] = &clone
	return nil
}

func (m *mockRepository) FindByIDForUser(_ context.Context, id, userID uint) (*Note, error) {
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return nil, ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (m *mockRepository) FindByUserAndDate(_ context.Context, userID uint, date time.Time) ([]Note, error) {
	var out []Note
	for _, n := range m.notes {
		if n.UserID == userID && n.NoteDate.Equal(date) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockRepository) FindAllByUser(_ context.Context, userID uint) ([]Note, error) {
	var out []Note
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, note *Note) error {
	if _, ok := m.notes[note.ID]; !ok {
		return ErrNoteNotFound
	}
	clone := *note
	m.notes[note.ID] = &clone
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uint) error {
	if _, ok := m.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func TestCreateNoteDefaultsToToday(t *testing.T) {
	svc := NewService(newMockRepository(), zap.NewNop())

	created, err := svc.CreateNote(context.Background(), CreateNoteInput{
		UserID:  1,
		Content: "dormí mejor hoy",
	})
	require.NoError(t, err)

	today := day(time.Now())
	assert.True(t, created.NoteDate.Equal(today), "expected %v, got %v", today, created.NoteDate)
	assert.Equal(t, 0, created.NoteDate.Hour())
}

func TestCreateNoteRejectsEmptyContent(t *testing.T) {
	svc := NewService(newMockRepository(), zap.NewNop())

	_, err := svc.CreateNote(context.Background(), CreateNoteInput{UserID: 1, Content: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateNoteTruncatesDateToDay(t *testing.T) {
	svc := NewService(newMockRepository(), zap.NewNop())

	created, err := svc.CreateNote(context.Background(), CreateNoteInput{
		UserID:  1,
		Date:    time.Date(2026, 3, 14, 22, 45, 11, 0, time.UTC),
		Content: "late entry",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), created.NoteDate)
}

func TestListNotesForDate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, zap.NewNop())

	target := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, in := range []CreateNoteInput{
		{UserID: 1, Date: target, Content: "first"},
		{UserID: 1, Date: target.AddDate(0, 0, 1), Content: "other day"},
		{UserID: 2, Date: target, Content: "other user"},
	} {
		_, err := svc.CreateNote(context.Background(), in)
		require.NoError(t, err)
	}

	notes, err := svc.ListNotesForDate(context.Background(), 1, target)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "first", notes[0].Content)
}

func TestUpdateNoteOtherUser(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.CreateNote(context.Background(), CreateNoteInput{UserID: 1, Content: "mine"})
	require.NoError(t, err)

	content := "stolen"
	_, err = svc.UpdateNote(context.Background(), created.ID, 2, UpdateNoteInput{Content: &content})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	err = svc.DeleteNote(context.Background(), created.ID, 2)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestUpdateNoteContent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.CreateNote(context.Background(), CreateNoteInput{UserID: 1, Content: "draft"})
	require.NoError(t, err)

	content := "final"
	updated, err := svc.UpdateNote(context.Background(), created.ID, 1, UpdateNoteInput{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)

	empty := "  "
	_, err = svc.UpdateNote(context.Background(), created.ID, 1, UpdateNoteInput{Content: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteNote(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.CreateNote(context.Background(), CreateNoteInput{UserID: 1, Content: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNote(context.Background(), created.ID, 1))
	_, err = svc.GetNote(context.Background(), created.ID, 1)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
