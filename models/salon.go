package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Salon is a provider: the owner of services, working hours and bookings.
type Salon struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID  uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`
	Name     string    `gorm:"not null" json:"name"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	Services     []Service      `gorm:"foreignKey:SalonID;constraint:OnDelete:CASCADE" json:"-"`
	WorkingHours []WorkingHours `gorm:"foreignKey:SalonID;constraint:OnDelete:CASCADE" json:"-"`
	Bookings     []Booking      `gorm:"foreignKey:SalonID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
