package model

import "time"

// Client представляет клиента владельца
type Client struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	OwnerID       int64      `json:"owner_id"`
	TotalVisits   int        `json:"total_visits"`
	LastVisitDate *time.Time `json:"last_visit_date"`
	CreatedAt     time.Time  `json:"created_at"`

	// Данные из связанного пользователя
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}
