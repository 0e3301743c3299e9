package model

import "time"

type FacultyModel struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Designation  *string    `gorm:"size:100" json:"designation,omitempty"`
	Department   *string    `gorm:"size:100" json:"department,omitempty"`
	Subjects     *string    `json:"subjects,omitempty"`
	Photo        *string    `gorm:"size:200" json:"photo,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	JoinedDate   *time.Time `json:"joined_date,omitempty"`
	Office       *string    `gorm:"size:100" json:"office,omitempty"`
	Phone        *string    `gorm:"size:20" json:"phone,omitempty"`
	Email        string     `gorm:"size:100;unique;not null" json:"email"`
	Linkedin     *string    `gorm:"size:255" json:"linkedin,omitempty"`
	PasswordHash string     `gorm:"size:255" json:"-"`
}

func (FacultyModel) TableName() string {
	return "faculties"
}

type EducationModel struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Degree     string  `gorm:"size:100;not null" json:"degree"`
	University *string `gorm:"size:150" json:"university,omitempty"`
	Year       *int    `json:"year,omitempty"`
	FacultyID  uint    `gorm:"not null;index" json:"faculty_id"`
}

func (EducationModel) TableName() string {
	return "educations"
}

type TimetableModel struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Day       string  `gorm:"size:20;not null" json:"day"`
	Time      string  `gorm:"size:50;not null" json:"time"`
	Course    string  `gorm:"size:100;not null" json:"course"`
	Location  *string `gorm:"size:100" json:"location,omitempty"`
	FacultyID uint    `gorm:"not null;index" json:"faculty_id"`
}

func (TimetableModel) TableName() string {
	return "timetables"
}
