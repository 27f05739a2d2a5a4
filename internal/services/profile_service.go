package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmailTaken     = errors.New("email is already in use by another account")
	ErrInvalidBudget  = errors.New("monthly budget must be a non-negative number")
)

// ProfileService handles profile reads and updates
type ProfileService struct {
	userRepo     repositories.UserRepositoryInterface
	auditService AuditServiceInterface
	logger       *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	userRepo repositories.UserRepositoryInterface,
	auditService AuditServiceInterface,
	logger *slog.Logger,
) ProfileServiceInterface {
	return &ProfileService{
		userRepo:     userRepo,
		auditService: auditService,
		logger:       logger,
	}
}

// Get retrieves the user's profile
func (s *ProfileService) Get(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// Update validates and applies a profile update. All checks run before any
// write, so a rejected update leaves the profile untouched.
func (s *ProfileService) Update(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	budget, err := decimal.NewFromString(req.MonthlyBudget)
	if err != nil || budget.IsNegative() {
		return nil, ErrInvalidBudget
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.GetByEmailExcluding(email, userID); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	user.Username = strings.TrimSpace(req.Username)
	user.Email = email
	user.Currency = req.Currency
	user.Language = req.Language
	user.MonthlyBudget = budget

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.auditService.Record(&userID, models.AuditActionProfileUpdated, "user", userID.String(), "", "", nil)

	return user, nil
}

// SetProfilePic stores the avatar file reference on the profile
func (s *ProfileService) SetProfilePic(userID uuid.UUID, filename string) error {
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"profile_pic": filename,
	}); err != nil {
		return err
	}

	s.auditService.Record(&userID, models.AuditActionProfileUpdated, "user", userID.String(), "", "",
		map[string]interface{}{"field": "profile_pic"})
	return nil
}
