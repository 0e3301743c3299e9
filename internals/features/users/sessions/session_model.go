package sessions

import "time"

// SessionModel adalah session store server-side: satu row per
// (role, principal): kebijakan single-active-session jatuh dari schema.
// login_status == true persis ketika row-nya ada; token di row harus sama
// byte-per-byte dengan cookie {role}_token.
type SessionModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Role        string    `gorm:"size:20;not null;uniqueIndex:uq_sessions_principal" json:"role"`
	PrincipalID uint      `gorm:"not null;uniqueIndex:uq_sessions_principal" json:"principal_id"`
	Token       string    `gorm:"size:128;not null" json:"-"`
	Device      string    `gorm:"size:255" json:"device"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionModel) TableName() string {
	return "sessions"
}
