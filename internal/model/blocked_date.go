package model

import "time"

// BlockedDate - административно заблокированная дата: в этот день
// запись невозможна независимо от остальных данных
type BlockedDate struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
