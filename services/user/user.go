package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "fleetrent/database/repository/user"
	"fleetrent/models"
	"fleetrent/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Session tokens stay valid for three days; the auth cache mirrors the hash
// for fast middleware checks.
const tokenTTL = 72 * time.Hour

// Register opens a new account. New accounts are never administrative;
// admin users are provisioned directly in the store.
func (svc *DefaultUserService) Register(ctx context.Context, input RegistrationInput) (*models.User, error) {
	if existing, err := svc.Repo.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, ErrAlreadyRegistered
	} else if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("username lookup failed: %w", err)
	}
	if existing, err := svc.Repo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, ErrAlreadyRegistered
	} else if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("email lookup failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsAdmin:      false,
	}
	if err := svc.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies credentials and issues a session token. The token
// hash lands in the auth cache so the middleware can validate without a
// database round trip.
func (svc *DefaultUserService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	u, err := svc.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.IsAdmin, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	cacheKey := utils.AuthCachePrefix + u.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, utils.HashToken(token), tokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache session token: %w", err)
	}

	return &AuthResult{User: u, Token: token}, nil
}

// GetByID retrieves a user account.
func (svc *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Delete removes the account and drops its cached session.
func (svc *DefaultUserService) Delete(ctx context.Context, id string) error {
	if err := svc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	_ = utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+id).Err()
	return nil
}
