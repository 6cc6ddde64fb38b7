package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReviewerID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	TenderID    *uuid.UUID `gorm:"type:uuid;index" json:"tender_id"`
	ListingID   *uuid.UUID `gorm:"type:uuid;index" json:"listing_id"`
	Rating      int        `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment     string     `gorm:"type:text" json:"comment"`

	Reviewer  User `gorm:"foreignkey:ReviewerID" json:"reviewer,omitempty"`
	Recipient User `gorm:"foreignkey:RecipientID" json:"recipient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
