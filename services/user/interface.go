package user

import (
	"context"

	userRepo "fleetrent/database/repository/user"
	"fleetrent/models"
)

// RegistrationInput carries the fields needed to open an account.
type RegistrationInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResult bundles the authenticated user with a session token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService manages accounts and session tokens.
type UserService interface {
	Register(ctx context.Context, input RegistrationInput) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
