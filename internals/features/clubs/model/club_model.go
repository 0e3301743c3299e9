package model

import "time"

type ClubModel struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `json:"description,omitempty"`
	ClubType    *string `gorm:"size:50" json:"club_type,omitempty"`
	SecretaryID *uint   `gorm:"index" json:"secretary_id,omitempty"`
}

func (ClubModel) TableName() string {
	return "clubs"
}

// ClubMembershipModel: maksimal satu row per (user, club): dijaga unique
// index, bukan cek aplikasi. Dua jalur masuk ke tabel yang sama:
// join langsung (unverified) dan approval tag request (verified).
type ClubMembershipModel struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	UserID     uint  `gorm:"not null;uniqueIndex:uq_club_memberships_user_club" json:"user_id"`
	ClubID     uint  `gorm:"not null;uniqueIndex:uq_club_memberships_user_club" json:"club_id"`
	IsVerified bool  `gorm:"not null;default:false" json:"is_verified"`
	VerifiedBy *uint `json:"verified_by,omitempty"`
}

func (ClubMembershipModel) TableName() string {
	return "club_memberships"
}

// ClubTagRequestModel: workflow pending -> approved/rejected.
// Invariant satu-pending-per-pasangan ditopang partial unique index
// (lihat databases/migrate.go).
type ClubTagRequestModel struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	ClubID      uint       `gorm:"not null;index" json:"club_id"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	RequestedAt time.Time  `gorm:"autoCreateTime" json:"requested_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *uint      `json:"reviewed_by,omitempty"`
}

func (ClubTagRequestModel) TableName() string {
	return "club_tag_requests"
}
