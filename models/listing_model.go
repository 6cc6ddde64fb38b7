package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ListingTypeSell = "sell"
	ListingTypeRent = "rent"
	ListingTypeBuy  = "buy"
)

type MarketplaceListing struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	ListingType string    `gorm:"size:20;not null;index" json:"listing_type"`
	Price       float64   `gorm:"type:numeric(12,2);not null" json:"price"`
	Condition   *string   `gorm:"size:50" json:"condition"`
	Location    string    `gorm:"size:255;not null;index" json:"location"`
	Images      []string  `gorm:"serializer:json;type:text" json:"images"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	ViewCount   int       `gorm:"default:0" json:"view_count"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *MarketplaceListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
