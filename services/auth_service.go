package services

import (
	"errors"
	"fmt"

	"authcenter/auth"
	"authcenter/database"
	"authcenter/models"
	"authcenter/repositories"

	"gorm.io/gorm"
)

// AuthService orchestrates registration and login. It depends on the
// repositories through their interfaces so the concrete storage is wired in
// at composition time.
type AuthService interface {
	Register(input *CredentialsInput) (string, error)
	Login(input *CredentialsInput) (string, error)
}

// CredentialsInput is the request body shared by registration and login.
type CredentialsInput struct {
	Email    string `json:"email" description:"User email, unique per account"`
	Password string `json:"password" description:"Plaintext password"`
}

type authService struct {
	users    repositories.UserRepository
	roles    repositories.RoleRepository
	tokens   *auth.TokenService
	hashCost int
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates a new AuthService instance
func NewAuthService(users repositories.UserRepository, roles repositories.RoleRepository, tokens *auth.TokenService, hashCost int) AuthService {
	return &authService{users: users, roles: roles, tokens: tokens, hashCost: hashCost}
}

// Register creates a user, attaches the default role and issues a token.
// The default role is resolved before the user row is created, so a missing
// seed role can never leave an orphaned user behind.
func (s *authService) Register(input *CredentialsInput) (string, error) {
	role, err := s.roles.FindByValue(database.DefaultRoleValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRoleNotSeeded
		}
		return "", fmt.Errorf("database error resolving default role: %w", err)
	}

	_, err = s.users.FindByEmail(input.Email)
	if err == nil {
		return "", ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("database error checking existing user: %w", err)
	}

	hashed, err := auth.HashPassword(input.Password, s.hashCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	user := models.User{
		Email:    input.Email,
		Password: hashed,
	}
	if err := s.users.Create(&user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.users.AppendRole(&user, role); err != nil {
		return "", fmt.Errorf("failed to attach default role: %w", err)
	}
	user.Roles = []models.Role{*role}

	return s.tokens.Issue(&user)
}

// Login verifies the credentials and issues a token carrying the user's
// current role set. A missing user and a wrong password both surface as
// ErrInvalidCredentials so accounts are not enumerable.
func (s *authService) Login(input *CredentialsInput) (string, error) {
	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("database error looking up user: %w", err)
	}

	if !auth.CheckPassword(input.Password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user)
}
