// Package users looks up and removes accounts. The HTTP side serves the
// caller's own profile; the admin side is driven from the command line.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store"
)

// UserService provides profile lookups and account removal.
type UserService struct {
	users store.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *UserService) GetUserProfile(ctx context.Context, userID int64) (*UserProfileResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError("User not found", err)
		}
		return nil, apperror.NewDatabaseError("Database error", err)
	}
	return toProfile(user), nil
}

// GetUserProfileByEmail retrieves a profile by email, compared case-insensitively.
func (s *UserService) GetUserProfileByEmail(ctx context.Context, email string) (*UserProfileResponse, error) {
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// DeleteUserByEmail removes the account and every todo it owns, returning
// the profile that was removed.
func (s *UserService) DeleteUserByEmail(ctx context.Context, email string) (*UserProfileResponse, error) {
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError("User not found", err)
		}
		return nil, apperror.NewDatabaseError("Failed to delete user", err)
	}
	return toProfile(user), nil
}

func (s *UserService) getByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.User{}, apperror.NewValidationError("Email is required", nil)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, apperror.NewNotFoundError(fmt.Sprintf("user with email %s not found", email), err)
		}
		return model.User{}, apperror.NewDatabaseError("Database error", err)
	}
	return user, nil
}

func toProfile(u model.User) *UserProfileResponse {
	return &UserProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
