package services

import (
	"errors"
	"fmt"

	"authcenter/models"
	"authcenter/repositories"

	"gorm.io/gorm"
)

type RoleService interface {
	Create(input *CreateRoleInput) (*models.Role, error)
	GetByValue(value string) (*models.Role, error)
	List() ([]models.Role, error)
}

type CreateRoleInput struct {
	Value       string `json:"value" description:"Symbolic role value, unique"`
	Description string `json:"description" description:"Human-readable description"`
}

type roleService struct {
	roles repositories.RoleRepository
}

var _ RoleService = (*roleService)(nil)

// NewRoleService creates a new RoleService instance
func NewRoleService(roles repositories.RoleRepository) RoleService {
	return &roleService{roles: roles}
}

func (s *roleService) Create(input *CreateRoleInput) (*models.Role, error) {
	_, err := s.roles.FindByValue(input.Value)
	if err == nil {
		return nil, ErrDuplicateRole
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error checking existing role: %w", err)
	}

	role := models.Role{Value: input.Value, Description: input.Description}
	if err := s.roles.Create(&role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &role, nil
}

func (s *roleService) GetByValue(value string) (*models.Role, error) {
	role, err := s.roles.FindByValue(value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %q: %w", value, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving role: %w", err)
	}
	return role, nil
}

func (s *roleService) List() ([]models.Role, error) {
	roles, err := s.roles.FindAll()
	if err != nil {
		return nil, fmt.Errorf("database error retrieving roles: %w", err)
	}
	return roles, nil
}
