package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Provisioned accounts get a fixed starter password; PasswordChanged stays
// false until the user replaces it.
const defaultPassword = "123456789"

type UserService struct {
	Users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

type ProvisionUserRequest struct {
	Email     string         `json:"email" binding:"required,email"`
	FirstName string         `json:"firstName" binding:"required,min=2"`
	LastName  string         `json:"lastName" binding:"required,min=2"`
	Role      model.UserRole `json:"role" binding:"required,oneof=admin student instructor"`
}

func (s *UserService) ProvisionUser(ctx context.Context, req ProvisionUserRequest) (*model.User, error) {
	displayName := fmt.Sprintf("%s %s", strings.ToLower(req.LastName), strings.ToLower(req.FirstName))

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		UID:             uuid.NewString(),
		Name:            displayName,
		Email:           strings.ToLower(req.Email),
		PasswordHash:    string(hash),
		Role:            req.Role,
		PasswordChanged: false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, uid string) error {
	return s.Users.Delete(ctx, uid)
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Users.List(ctx, page, limit)
}
