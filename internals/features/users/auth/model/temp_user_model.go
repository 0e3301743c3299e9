package model

import "time"

// TempUserModel = staging row signup sebelum email terverifikasi.
// Single-use: dihapus begitu verifikasi sukses atau ketahuan expired.
type TempUserModel struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Email             string    `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	VerificationToken string    `gorm:"size:100;not null;index" json:"-"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt         time.Time `gorm:"not null" json:"expires_at"`
}

func (TempUserModel) TableName() string {
	return "temp_users"
}
