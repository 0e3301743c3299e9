package model

import "gorm.io/datatypes"

// AdminModel login pakai username, bukan email. Admin adalah principal
// "bentuk paling sederhana": tanpa warning concurrent-session.
type AdminModel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:50;unique;not null" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;not null" json:"role"`
	Permissions  datatypes.JSON `json:"permissions,omitempty"`
}

func (AdminModel) TableName() string {
	return "admins"
}
