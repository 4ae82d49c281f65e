package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                 string     `gorm:"type:varchar(255);not null"`
	Email                string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash         string     `gorm:"type:varchar(255);not null"`
	Role                 string     `gorm:"type:varchar(20);not null;index"`
	Banned               bool       `gorm:"not null"`
	Suspended            bool       `gorm:"not null"`
	ResetPasswordToken   *string    `gorm:"type:char(64);index"`
	ResetPasswordExpires *time.Time `gorm:"index"`
	LastActive           *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// BankInfoModel is embedded in SellerModel with a bank_ column prefix
type BankInfoModel struct {
	AccountName   string `gorm:"type:varchar(255)"`
	AccountNumber string `gorm:"type:varchar(64)"`
	BankName      string `gorm:"type:varchar(255)"`
}

// SellerModel represents the database model for Seller
type SellerModel struct {
	ID                   uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name                 string        `gorm:"type:varchar(255);not null"`
	ShopName             string        `gorm:"type:varchar(255);not null"`
	Email                string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash         string        `gorm:"type:varchar(255);not null"`
	Role                 string        `gorm:"type:varchar(20);not null"`
	Phone                string        `gorm:"type:varchar(32)"`
	Address              string        `gorm:"type:text"`
	ShopLogo             string        `gorm:"type:text"`
	ShopDescription      string        `gorm:"type:text"`
	Approved             bool          `gorm:"not null;index"`
	Banned               bool          `gorm:"not null"`
	Suspended            bool          `gorm:"not null"`
	BankInfo             BankInfoModel `gorm:"embedded;embeddedPrefix:bank_"`
	ResetPasswordToken   *string       `gorm:"type:char(64);index"`
	ResetPasswordExpires *time.Time    `gorm:"index"`
	LastActive           *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

func (SellerModel) TableName() string {
	return "sellers"
}
