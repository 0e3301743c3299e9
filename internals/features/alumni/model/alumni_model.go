package model

import "time"

type AlumniModel struct {
	ID                     uint    `gorm:"primaryKey" json:"id"`
	Name                   string  `gorm:"size:100;not null" json:"name"`
	Batch                  *string `gorm:"size:20" json:"batch,omitempty"`
	CurrentDesignation     *string `gorm:"size:100" json:"current_designation,omitempty"`
	Company                *string `gorm:"size:100" json:"company,omitempty"`
	LinkedinProfile        *string `gorm:"size:255" json:"linkedin_profile,omitempty"`
	Email                  string  `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash           string  `gorm:"size:255" json:"-"`
	About                  *string `json:"about,omitempty"`
	WorkExperience         *string `json:"work_experience,omitempty"`
	Education              *string `json:"education,omitempty"`
	Projects               *string `json:"projects,omitempty"`
	Achievements           *string `json:"achievements,omitempty"`
	AcceptsContactRequests bool    `gorm:"not null;default:true" json:"accepts_contact_requests"`
}

func (AlumniModel) TableName() string {
	return "alumni"
}

// AlumniContactRequestModel: pending -> accepted/rejected; accepted membuka
// chat dua arah untuk pasangan (student, alumni) tsb.
type AlumniContactRequestModel struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StudentID   uint       `gorm:"not null;index" json:"student_id"`
	AlumniID    uint       `gorm:"not null;index" json:"alumni_id"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Message     *string    `json:"message,omitempty"`
	RequestedAt time.Time  `gorm:"autoCreateTime" json:"requested_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func (AlumniContactRequestModel) TableName() string {
	return "alumni_contact_requests"
}

// AlumniChatModel: append-only, urut timestamp, sender_type student|alumni.
type AlumniChatModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AlumniID   uint      `gorm:"not null;index" json:"alumni_id"`
	StudentID  uint      `gorm:"not null;index" json:"student_id"`
	SenderType string    `gorm:"size:20;not null" json:"sender_type"`
	Message    string    `gorm:"not null" json:"message"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
}

func (AlumniChatModel) TableName() string {
	return "alumni_chats"
}
