package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventModel: form_fields = schema form pendaftaran (JSON array), disimpan
// apa adanya: backend tidak menginterpretasi isinya.
type EventModel struct {
	ID                        uint           `gorm:"primaryKey" json:"id"`
	Title                     string         `gorm:"size:200;not null" json:"title"`
	Description               *string        `json:"description,omitempty"`
	EventDate                 time.Time      `gorm:"not null" json:"event_date"`
	Venue                     *string        `gorm:"size:100" json:"venue,omitempty"`
	RegistrationLink          *string        `gorm:"size:255" json:"registration_link,omitempty"`
	IsHighlighted             bool           `gorm:"not null;default:false" json:"is_highlighted"`
	EventType                 *string        `gorm:"size:50" json:"event_type,omitempty"`
	ClubID                    *uint          `gorm:"index" json:"club_id,omitempty"`
	CreatedBy                 *uint          `json:"created_by,omitempty"`
	ParticipationFormRequired bool           `gorm:"not null;default:false" json:"participation_form_required"`
	IsSelective               bool           `gorm:"not null;default:false" json:"is_selective"`
	FormFields                datatypes.JSON `json:"form_fields,omitempty"`
}

func (EventModel) TableName() string {
	return "events"
}

// EventParticipationModel: unique (event, user) menutup double-enroll.
// Status awal approved, kecuali event-nya selective -> pending.
type EventParticipationModel struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EventID    uint           `gorm:"not null;uniqueIndex:uq_event_participations_event_user" json:"event_id"`
	UserID     uint           `gorm:"not null;uniqueIndex:uq_event_participations_event_user" json:"user_id"`
	FormData   datatypes.JSON `json:"form_data,omitempty"`
	Status     string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	EnrolledAt time.Time      `gorm:"autoCreateTime" json:"enrolled_at"`
	ReviewedBy *uint          `json:"reviewed_by,omitempty"`
}

func (EventParticipationModel) TableName() string {
	return "event_participations"
}
