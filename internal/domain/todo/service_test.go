package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	areas  map[uint]*Area
	tasks  map[uint]*Task
	nextID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		areas: make(map[uint]*Area),
		tasks: make(map[uint]*Task),
	}
}

func (m *mockRepository) CreateArea(ctx context.Context, area *Area) error {
	m.nextID++
	area.ID = m.nextID
	m.areas[area.ID] = area
	return nil
}

func (m *mockRepository) FindAreaByIDForUser(ctx context.Context, id, userID uint) (*Area, error) {
	area, ok := m.areas[id]
	if !ok || area.UserID != userID {
		return nil, ErrAreaNotFound
	}
	return area, nil
}

func (m *mockRepository) FindAreasByUser(ctx context.Context, userID uint) ([]Area, error) {
	var areas []Area
	for _, a := range m.areas {
		if a.UserID == userID {
			areas = append(areas, *a)
		}
	}
	return areas, nil
}

func (m *mockRepository) UpdateArea(ctx context.Context, area *Area) error {
	m.areas[area.ID] = area
	return nil
}

func (m *mockRepository) DeleteArea(ctx context.Context, id uint) error {
	if _, ok := m.areas[id]; !ok {
		return ErrAreaNotFound
	}
	delete(m.areas, id)
	for taskID, task := range m.tasks {
		if task.AreaID == id {
			delete(m.tasks, taskID)
		}
	}
	return nil
}

func (m *mockRepository) CreateTask(ctx context.Context, task *Task) error {
	m.nextID++
	task.ID = m.nextID
	m.tasks[task.ID] = task
	return nil
}

func (m *mockRepository) FindTaskByID(ctx context.Context, id uint) (*Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (m *mockRepository) FindTasksByArea(ctx context.Context, areaID uint) ([]Task, error) {
	var tasks []Task
	for _, t := range m.tasks {
		if t.AreaID == areaID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (m *mockRepository) UpdateTask(ctx context.Context, task *Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockRepository) DeleteTask(ctx context.Context, id uint) error {
	if _, ok := m.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func newTestService(repo *mockRepository) Service {
	return NewService(repo, zap.NewNop())
}

func TestCreateAreaRequiresName(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.CreateArea(context.Background(), CreateAreaInput{UserID: 1, Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	area, err := svc.CreateArea(ctx, CreateAreaInput{UserID: 1, Name: "Trabajo", Emoji: "💼"})
	require.NoError(t, err)

	task, err := svc.CreateTask(ctx, CreateTaskInput{AreaID: area.ID, UserID: 1, Text: "enviar informe"})
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
}

func TestCreateTaskRejectsUnknownPriority(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	area, err := svc.CreateArea(ctx, CreateAreaInput{UserID: 1, Name: "Casa"})
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, CreateTaskInput{
		AreaID:   area.ID,
		UserID:   1,
		Text:     "limpiar",
		Priority: "urgent",
	})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestCreateTaskOtherUsersArea(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	area, err := svc.CreateArea(ctx, CreateAreaInput{UserID: 1, Name: "Casa"})
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, CreateTaskInput{AreaID: area.ID, UserID: 2, Text: "x"})
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestToggleTask(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	area, err := svc.CreateArea(ctx, CreateAreaInput{UserID: 1, Name: "Casa"})
	require.NoError(t, err)
	task, err := svc.CreateTask(ctx, CreateTaskInput{AreaID: area.ID, UserID: 1, Text: "regar plantas"})
	require.NoError(t, err)

	toggled, err := svc.ToggleTask(ctx, task.ID, 1)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.ToggleTask(ctx, task.ID, 1)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestUpdateTaskOtherUser(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	area, err := svc.CreateArea(ctx, CreateAreaInput{UserID: 1, Name: "A"})
	require.NoError(t, err)
	task, err := svc.CreateTask(ctx, CreateTaskInput{AreaID: area.ID, UserID: 1, Text: "x"})
	require.NoError(t, err)

	done := true
	_, err = svc.UpdateTask(ctx, task.ID, 2, UpdateTaskInput{Completed: &done})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteAreaCascadesTasks(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	area, err := svc.CreateArea(ctx, CreateAreaInput{UserID: 1, Name: "Casa"})
	require.NoError(t, err)
	task, err := svc.CreateTask(ctx, CreateTaskInput{AreaID: area.ID, UserID: 1, Text: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteArea(ctx, area.ID, 1))

	_, err = repo.FindTaskByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
