package models

import "gorm.io/gorm"

// FAQ is a public help entry
type FAQ struct {
	gorm.Model
	Category  string `json:"category"`
	Question  string `json:"question" gorm:"type:text;not null"`
	Answer    string `json:"answer" gorm:"type:text;not null"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}

func (FAQ) TableName() string {
	return "faqs"
}

// Testimonial is a public marketing quote
type Testimonial struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	RoleOrBand string `json:"role_or_band"`
	Quote      string `json:"quote" gorm:"type:text"`
	AvatarURL  string `json:"avatar_url"`
	SortOrder  int    `json:"sort_order" gorm:"default:0"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
