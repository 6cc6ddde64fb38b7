package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenderBid struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"tender_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description   string    `gorm:"type:text" json:"description"`
	TimeframeDays int       `gorm:"not null" json:"timeframe_days"`
	IsAccepted    bool      `gorm:"default:false" json:"is_accepted"`

	Tender Tender `gorm:"foreignkey:TenderID" json:"tender,omitempty"`
	User   User   `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *TenderBid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
