package models

import (
	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	FirstName    string `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string `json:"last_name" gorm:"column:last_name;not null"`
	CollegeEmail string `json:"college_email" gorm:"column:college_email;unique;not null"`
}

// TableName specifies the table name
func (Student) TableName() string {
	return "students"
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
