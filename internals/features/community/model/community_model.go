package model

import "time"

// CommunityPostModel: kolom likes denormalized, dijaga sinkron lewat
// increment/decrement saat toggle: tidak pernah dihitung ulang dari ledger,
// dan tidak boleh negatif.
type CommunityPostModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	PostType  *string   `gorm:"size:50" json:"post_type,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
}

func (CommunityPostModel) TableName() string {
	return "community_posts"
}

// PostLikeModel: constraint unique (user, post) menutup race double-insert
// di level storage; pola yang sama dipakai di semua ledger.
type PostLikeModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_post_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:uq_post_likes_user_post" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}
