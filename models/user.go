package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email     string `gorm:"unique;not null"`
	Password  string `gorm:"not null" json:"-"` // Don't expose password hash
	Banned    bool   `gorm:"default:false"`
	BanReason string
	Roles     []Role `gorm:"many2many:user_roles;"` // Many-to-Many relationship with Role
	Posts     []Post
}
