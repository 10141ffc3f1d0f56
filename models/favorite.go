package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Favorite struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_salon,priority:1" json:"userId"`
	SalonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_salon,priority:2" json:"salonId"`

	Salon Salon `gorm:"foreignKey:SalonID;constraint:OnDelete:CASCADE" json:"salon"`

	CreatedAt time.Time `json:"createdAt"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
