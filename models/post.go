package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Content string
	Image   string // stored file name, served from the upload directory
	UserID  uint   `gorm:"index;not null"`
}
