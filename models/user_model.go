package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypeIndividual = "individual"
	UserTypeCompany    = "company"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"size:50;not null;unique" json:"username"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	UserType string    `gorm:"size:20;not null;default:'individual'" json:"user_type"`

	Phone     *string `gorm:"size:30" json:"phone"`
	Bio       *string `gorm:"type:text" json:"bio"`
	Location  *string `gorm:"size:255" json:"location"`
	AvatarURL *string `gorm:"size:255" json:"avatar_url"`

	Rating        int     `gorm:"default:0" json:"rating"`
	IsVerified    bool    `gorm:"default:false" json:"is_verified"`
	IsAdmin       bool    `gorm:"default:false" json:"is_admin"`
	WalletBalance float64 `gorm:"type:numeric(10,2);default:0.00" json:"wallet_balance"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
