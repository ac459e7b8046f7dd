package model

import "time"

// Service представляет услугу владельца
type Service struct {
	ID              int64     `json:"id"`
	OwnerID         int64     `json:"owner_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           int       `json:"price"` // в рублях
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}
