package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChatHistoryModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Mode      string    `gorm:"size:20;not null" json:"mode"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    string    `gorm:"not null" json:"answer"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (ChatHistoryModel) TableName() string {
	return "chat_histories"
}

type UserPreferencesModel struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	LastMode    string         `gorm:"size:20;not null;default:'normal'" json:"last_mode"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserPreferencesModel) TableName() string {
	return "user_preferences"
}

type PracticeQuestionModel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Question     string         `gorm:"not null" json:"question"`
	QuestionType string         `gorm:"size:20;not null" json:"question_type"`
	Options      datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer string        `gorm:"not null" json:"-"`
	TestCases    datatypes.JSON `json:"test_cases,omitempty"`
	Difficulty   string         `gorm:"size:20;not null;default:'medium'" json:"difficulty"`
	Subject      *string        `gorm:"size:100" json:"subject,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (PracticeQuestionModel) TableName() string {
	return "practice_questions"
}
