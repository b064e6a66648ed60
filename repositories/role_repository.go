package repositories

import (
	"authcenter/models"

	"gorm.io/gorm"
)

// RoleRepository interface defines Role-related database operations
type RoleRepository interface {
	Create(role *models.Role) error
	FindByValue(value string) (*models.Role, error)
	FindAll() ([]models.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository instance
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(role *models.Role) error {
	result := r.db.Create(role)
	return result.Error
}

// FindByValue finds Role by its symbolic value (e.g. "USER")
func (r *roleRepository) FindByValue(value string) (*models.Role, error) {
	var role models.Role
	result := r.db.Where("value = ?", value).First(&role)
	if result.Error != nil {
		return nil, result.Error
	}
	return &role, nil
}

func (r *roleRepository) FindAll() ([]models.Role, error) {
	var roles []models.Role
	result := r.db.Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}
	return roles, nil
}
