package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// UserService handles account-level operations
type UserService struct {
	userRepo    ports.UserRepository
	projectRepo ports.ProjectRepository
	cache       ports.CacheRepository
	logger      *logger.Logger
}

// NewUserService creates a new user service. cache may be nil to
// disable caching.
func NewUserService(userRepo ports.UserRepository, projectRepo ports.ProjectRepository, cache ports.CacheRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.PasswordHash = ""

	return user, nil
}

// ChangePassword changes a user's password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return entities.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed successfully", "user_id", userID)

	return nil
}

// SetProjectOrder replaces the user's stored project display order. The
// submitted list must be an exact permutation of the project ids the
// user currently owns or collaborates on.
func (s *UserService) SetProjectOrder(ctx context.Context, userID uuid.UUID, order []uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	current := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		current[i] = p.ID
	}

	if err := entities.ValidateOrder(order, current); err != nil {
		return err
	}

	if err := s.userRepo.SetProjectOrder(ctx, userID, order); err != nil {
		return fmt.Errorf("set project order: %w", err)
	}

	// The listing is cached already sorted, so a reorder must drop it.
	if s.cache != nil {
		if err := s.cache.Delete(ctx, projectListKey(userID)); err != nil {
			s.logger.Debug("Failed to invalidate project listing", "error", err, "user_id", userID)
		}
	}

	s.logger.Info("Project order updated", "user_id", userID, "projects", len(order))

	return nil
}
