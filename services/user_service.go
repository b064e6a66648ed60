package services

import (
	"errors"
	"fmt"

	"authcenter/models"
	"authcenter/repositories"

	"gorm.io/gorm"
)

// The UserService interface defines the methods that user services need to implement
type UserService interface {
	GetByID(id uint) (*models.User, error)
	List(page int, pageSize int) ([]models.User, int64, error)
	AssignRole(input *AssignRoleInput) (*models.User, error)
	Ban(input *BanInput) (*models.User, error)
	Unban(userID uint) (*models.User, error)
}

// --- Structs for Input/Output ---

type AssignRoleInput struct {
	UserID uint   `json:"userId" description:"Identifier of the user"`
	Value  string `json:"value" description:"Symbolic role value, e.g. ADMIN"`
}

type BanInput struct {
	UserID    uint   `json:"userId" description:"Identifier of the user"`
	BanReason string `json:"banReason" description:"Reason shown to the banned user"`
}

type userService struct {
	users repositories.UserRepository
	roles repositories.RoleRepository
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(users repositories.UserRepository, roles repositories.RoleRepository) UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) GetByID(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}
	return user, nil
}

func (s *userService) List(page int, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.users.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("database error retrieving users: %w", err)
	}
	return users, total, nil
}

// AssignRole links an existing role to an existing user. Either side being
// absent is a NotFound, surfaced before anything is written.
func (s *userService) AssignRole(input *AssignRoleInput) (*models.User, error) {
	user, err := s.users.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}

	role, err := s.roles.FindByValue(input.Value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %q: %w", input.Value, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving role: %w", err)
	}

	if err := s.users.AppendRole(user, role); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	return s.users.FindByID(user.ID)
}

// Ban marks the user as banned and stores the reason. Already-issued tokens
// stay valid until they expire; the token design is stateless and the ban
// takes effect for future logins and server-side checks only.
func (s *userService) Ban(input *BanInput) (*models.User, error) {
	user, err := s.users.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}

	user.Banned = true
	user.BanReason = input.BanReason
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save ban: %w", err)
	}

	return user, nil
}

// Unban clears the ban flag together with the reason, so the reason is never
// present on an unbanned user.
func (s *userService) Unban(userID uint) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}

	user.Banned = false
	user.BanReason = ""
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save unban: %w", err)
	}

	return user, nil
}
