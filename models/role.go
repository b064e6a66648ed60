package models

import "gorm.io/gorm"

// Role is identified by its symbolic Value (e.g. "USER", "ADMIN").
// Roles are seed data; this flow reads them but never mutates them.
type Role struct {
	gorm.Model
	Value       string `gorm:"unique;not null"`
	Description string
	Users       []User `gorm:"many2many:user_roles;"` // Many-to-Many relationship back to User
}
