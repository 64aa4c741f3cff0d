package dto

import "github.com/crisprlt/HabitFlow-sub000/internal/domain/note"

type CreateNoteRequest struct {
	Content string `json:"content" binding:"required"`
	Date    string `json:"date,omitempty"`
}

type UpdateNoteRequest struct {
	Content *string `json:"content,omitempty"`
	Date    *string `json:"date,omitempty"`
}

type NoteResponse struct {
	ID      uint   `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

func NoteToResponse(n *note.Note) NoteResponse {
	return NoteResponse{
		ID:      n.ID,
		Date:    FormatDate(n.NoteDate),
		Content: n.Content,
	}
}

func NotesToResponse(notes []note.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, NoteToResponse(&notes[i]))
	}
	return out
}
