package model

import "time"

// UserModel merepresentasikan student di tabel users.
// Kolom session_token/login_status versi lama digantikan session store
// terpisah (internals/features/users/sessions).
type UserModel struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name" validate:"required,min=3,max=100"`
	Email         string    `gorm:"size:100;unique;not null" json:"email" validate:"required,email"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	ProfileImage  *string   `gorm:"size:255" json:"profile_image,omitempty"`
	Course        *string   `gorm:"size:50" json:"course,omitempty"`
	Branch        *string   `gorm:"size:50" json:"branch,omitempty"`
	Batch         *string   `gorm:"size:20" json:"batch,omitempty"`
	Year          *int      `json:"year,omitempty"`
	SelectedBusID *uint     `json:"selected_bus_id,omitempty"`
	SelectedStop  *string   `gorm:"size:100" json:"selected_stop,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserModel) TableName() string {
	return "users"
}
