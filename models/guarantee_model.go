package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GuaranteeStatusPending   = "pending"
	GuaranteeStatusActive    = "active"
	GuaranteeStatusExpired   = "expired"
	GuaranteeStatusCanceled  = "canceled"
	GuaranteeStatusCompleted = "completed"
)

type BankGuarantee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	ContractorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"contractor_id"`
	TenderID     *uuid.UUID `gorm:"type:uuid;index" json:"tender_id"`
	Amount       float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description  string     `gorm:"type:text" json:"description"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      time.Time  `gorm:"not null" json:"end_date"`
	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`

	Customer   User `gorm:"foreignkey:CustomerID" json:"customer,omitempty"`
	Contractor User `gorm:"foreignkey:ContractorID" json:"contractor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *BankGuarantee) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
