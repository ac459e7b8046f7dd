package model

import "time"

// StudyPeriod представляет еженедельную занятость владельца (учёбу),
// привязанную ко дню недели, а не к дате
type StudyPeriod struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	DayOfWeek    string    `json:"day_of_week"` // monday..sunday
	StartMinutes int       `json:"start_minutes"`
	EndMinutes   int       `json:"end_minutes"`
	CreatedAt    time.Time `json:"created_at"`
}

// Weekdays - порядок дней недели, как они хранятся в week_schedule
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}
