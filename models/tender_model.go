package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TenderStatusOpen       = "open"
	TenderStatusInProgress = "in_progress"
	TenderStatusCompleted  = "completed"
	TenderStatusCanceled   = "canceled"
)

type Tender struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Location    string    `gorm:"size:255;not null;index" json:"location"`
	Budget      float64   `gorm:"type:numeric(12,2);not null" json:"budget"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	Status      string    `gorm:"size:20;not null;default:'open';index" json:"status"`
	// Images is persisted as a JSON array in a text column.
	Images    []string `gorm:"serializer:json;type:text" json:"images"`
	ViewCount int      `gorm:"default:0" json:"view_count"`

	User User        `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Bids []TenderBid `gorm:"foreignkey:TenderID" json:"bids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tender) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
