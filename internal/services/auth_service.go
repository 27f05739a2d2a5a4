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
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	auditService    AuditServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	auditService AuditServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		auditService:    auditService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register creates a new user account. The email is normalized to lowercase
// before the duplicate check so registration and login agree on identity.
func (s *AuthService) Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existingUser, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		s.auditService.Record(nil, models.AuditActionFailedRegistration, "user", "", ipAddress, userAgent,
			map[string]interface{}{"email": email, "reason": "email_already_exists"})
		s.metrics.RecordAuthEvent("register", "duplicate_email")
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		s.metrics.RecordAuthEvent("register", "weak_password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditService.Record(&user.ID, models.AuditActionRegister, "user", user.ID.String(), ipAddress, userAgent, nil)
	s.metrics.RecordAuthEvent("register", "success")

	return user, nil
}

// Login authenticates a user and returns an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.auditService.Record(nil, models.AuditActionFailedLogin, "user", "", ipAddress, userAgent,
				map[string]interface{}{"email": email, "reason": "user_not_found"})
			s.metrics.RecordAuthEvent("login", "failure")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.auditService.Record(&user.ID, models.AuditActionFailedLogin, "user", user.ID.String(), ipAddress, userAgent,
			map[string]interface{}{"reason": "invalid_password"})
		s.metrics.RecordAuthEvent("login", "failure")
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.auditService.Record(&user.ID, models.AuditActionLogin, "user", user.ID.String(), ipAddress, userAgent, nil)
	s.metrics.RecordAuthEvent("login", "success")

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        UserToResponse(user),
	}, nil
}

// ChangePassword verifies the old password and replaces it with a
// strength-checked new one. Nothing is written when either check fails.
func (s *AuthService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest, ipAddress, userAgent string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.OldPassword, user.PasswordHash) {
		s.metrics.RecordAuthEvent("change_password", "failure")
		return ErrCurrentPasswordWrong
	}

	hashedPassword, err := s.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		s.metrics.RecordAuthEvent("change_password", "weak_password")
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.auditService.Record(&userID, models.AuditActionPasswordUpdated, "user", userID.String(), ipAddress, userAgent, nil)
	s.metrics.RecordAuthEvent("change_password", "success")

	s.logger.Info("password changed", "user_id", userID)

	return nil
}

// UserToResponse converts a user model to its public projection
func UserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		ProfilePic:    user.ProfilePic,
		Currency:      user.Currency,
		Language:      user.Language,
		MonthlyBudget: user.MonthlyBudget.StringFixed(2),
		CreatedAt:     user.CreatedAt,
	}
}
