package model

import "time"

type EventType string

const (
	EventTypeStudy  EventType = "study"  // учёба (еженедельная)
	EventTypeCustom EventType = "custom" // разовое мероприятие
)

// CalendarEvent представляет разовое мероприятие владельца на конкретную дату
type CalendarEvent struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Type         EventType `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	StartMinutes int       `json:"start_minutes"`
	EndMinutes   int       `json:"end_minutes"`
	CreatedAt    time.Time `json:"created_at"`
}
