package dto

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func OKMessage(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Error(message string) Response {
	return Response{Success: false, Message: message}
}

// ParseDate parses a YYYY-MM-DD string; empty means the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders a date in wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
