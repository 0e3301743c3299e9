package model

import "time"

// AcademicResourceModel hanya metadata; byte file hidup di blob store
// eksternal, diacu lewat file_path (key opaque).
type AcademicResourceModel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Course       string    `gorm:"size:50;not null" json:"course"`
	Branch       string    `gorm:"size:50;not null" json:"branch"`
	Year         int       `gorm:"not null" json:"year"`
	Subject      string    `gorm:"size:100;not null;index" json:"subject"`
	ResourceType string    `gorm:"size:20;not null" json:"resource_type"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	FilePath     string    `gorm:"size:255;not null" json:"file_path"`
	UploadedBy   *uint     `json:"uploaded_by,omitempty"`
	UploadDate   time.Time `gorm:"autoCreateTime" json:"upload_date"`
	Views        int       `gorm:"not null;default:0" json:"views"`
}

func (AcademicResourceModel) TableName() string {
	return "academic_resources"
}
