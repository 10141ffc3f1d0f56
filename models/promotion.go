package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Promotion is a percentage discount on one service during [StartTime, EndTime].
type Promotion struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID          uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	DiscountPercentage int       `gorm:"not null;check:discount_percentage BETWEEN 0 AND 100" json:"discountPercentage"`
	StartTime          time.Time `gorm:"not null;index" json:"startTime"`
	EndTime            time.Time `gorm:"not null" json:"endTime"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (p *Promotion) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// ActiveAt reports whether t falls inside the promotion window, bounds included.
func (p Promotion) ActiveAt(t time.Time) bool {
	return !t.Before(p.StartTime) && !t.After(p.EndTime)
}
