package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_service,priority:1" json:"userId"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_service,priority:2" json:"serviceId"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`

	Service Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"service"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
