package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/anujghosh1220/restaurant-management-system/internal/config"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

// UserService handles signup, login and the admin bootstrap.
type UserService struct {
	userRepo repository.UserRepository
	logger   *logrus.Entry
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger *logrus.Entry) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Signup registers a new user. Usernames and emails must be unique.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if err := ValidateSignupRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, models.NewValidationError("username", "username already exists")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	if req.Email != "" {
		if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
			return nil, models.NewValidationError("email", "email already registered")
		} else if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, nil
}

// Login authenticates a user by email and password. Wrong email and wrong
// password return the same error.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("credentials", "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.NewValidationError("credentials", "invalid email or password")
	}

	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// EnsureAdmin creates the configured admin account if it does not exist yet.
// Runs at startup so a fresh database always has an administrator.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if _, err := s.userRepo.GetByUsername(ctx, cfg.Username); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"username": cfg.Username,
	}).Info("Admin account created")

	return nil
}
