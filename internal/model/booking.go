package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения владельца
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждена
	BookingStatusCompleted BookingStatus = "completed" // Завершена
	BookingStatusCancelled BookingStatus = "cancelled" // Отменена
)

// Booking представляет запись клиента на услугу.
// StartMinutes/EndMinutes - минуты от полуночи локального дня.
type Booking struct {
	ID           int64         `json:"id"`
	PublicCode   uuid.UUID     `json:"public_code"` // код для клиента в уведомлениях
	ClientID     int64         `json:"client_id"`
	ServiceID    int64         `json:"service_id"`
	OwnerID      int64         `json:"owner_id"`
	Date         time.Time     `json:"date"`
	StartMinutes int           `json:"start_minutes"`
	EndMinutes   int           `json:"end_minutes"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Дополнительные поля для отображения (не из таблицы bookings)
	ClientName  string `json:"client_name,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	Price       int    `json:"price,omitempty"`
}

// IsActive сообщает, занимает ли запись время в расписании
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}
