package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking occupies [StartTime, EndTime) of a salon on Date while confirmed.
type Booking struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalonID   uuid.UUID      `gorm:"type:uuid;index:idx_salon_date;not null" json:"salonId"`
	ServiceID uuid.UUID      `gorm:"type:uuid;index;not null" json:"serviceId"`
	ClientID  uuid.UUID      `gorm:"type:uuid;index;not null" json:"clientId"`
	Date      datatypes.Date `gorm:"index:idx_salon_date;not null" json:"date"`
	StartTime ClockTime      `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   ClockTime      `gorm:"type:varchar(5);not null" json:"endTime"`
	Status    string         `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// Overlaps reports whether [start, end) intersects the booking's interval.
func (b Booking) Overlaps(start, end ClockTime) bool {
	return start < b.EndTime && b.StartTime < end
}
