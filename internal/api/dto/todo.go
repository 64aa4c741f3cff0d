package dto

import "github.com/crisprlt/HabitFlow-sub000/internal/domain/todo"

type CreateAreaRequest struct {
	Name  string `json:"name" binding:"required"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

type UpdateAreaRequest struct {
	Name  *string `json:"name,omitempty"`
	Emoji *string `json:"emoji,omitempty"`
	Color *string `json:"color,omitempty"`
}

type CreateTaskRequest struct {
	Text     string `json:"text" binding:"required"`
	Priority string `json:"priority"`
}

type UpdateTaskRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Priority  *string `json:"priority,omitempty"`
}

type TaskResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
}

type AreaResponse struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Emoji string         `json:"emoji,omitempty"`
	Color string         `json:"color,omitempty"`
	Tasks []TaskResponse `json:"tasks"`
}

func TaskToResponse(t *todo.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Priority:  string(t.Priority),
	}
}

func AreaToResponse(a *todo.Area) AreaResponse {
	tasks := make([]TaskResponse, 0, len(a.Tasks))
	for i := range a.Tasks {
		tasks = append(tasks, TaskToResponse(&a.Tasks[i]))
	}
	return AreaResponse{
		ID:    a.ID,
		Name:  a.Name,
		Emoji: a.Emoji,
		Color: a.Color,
		Tasks: tasks,
	}
}

func AreasToResponse(areas []todo.Area) []AreaResponse {
	out := make([]AreaResponse, 0, len(areas))
	for i := range areas {
		out = append(out, AreaToResponse(&areas[i]))
	}
	return out
}
