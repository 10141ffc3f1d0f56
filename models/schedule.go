package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkingHours is one weekly recurring open interval of a salon.
// Weekday follows time.Weekday: 0 is Sunday, 6 is Saturday.
type WorkingHours struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	Weekday   int       `gorm:"not null;check:weekday BETWEEN 0 AND 6" json:"weekday"`
	OpenTime  ClockTime `gorm:"type:varchar(5);not null" json:"openTime"`
	CloseTime ClockTime `gorm:"type:varchar(5);not null" json:"closeTime"`
}

func (w *WorkingHours) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

func (w WorkingHours) Day() time.Weekday {
	return time.Weekday(w.Weekday)
}
