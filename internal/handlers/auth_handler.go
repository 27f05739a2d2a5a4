package handlers

import (
	"errors"
	"net/http"

	"fintrack/internal/dto"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	user, err := h.authService.Register(&req, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			return SendError(c, apperrors.UserAlreadyExists)
		}
		if isPasswordPolicyError(err) {
			return SendError(c, apperrors.ValidationWeakPassword, apperrors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    services.UserToResponse(user),
		Message: "User registered successfully",
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	tokens, err := h.authService.Login(&req, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, apperrors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// ChangePassword replaces the authenticated user's password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	var req dto.ChangePasswordRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	if err := h.authService.ChangePassword(userID, &req, ipAddress, userAgent); err != nil {
		if errors.Is(err, services.ErrCurrentPasswordWrong) {
			return SendError(c, apperrors.AuthInvalidCredentials, apperrors.WithDetails("Current password is incorrect"))
		}
		if isPasswordPolicyError(err) {
			return SendError(c, apperrors.ValidationWeakPassword, apperrors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Password updated successfully",
	})
}

// isPasswordPolicyError reports whether err is one of the password
// strength violations surfaced to the client
func isPasswordPolicyError(err error) bool {
	return errors.Is(err, services.ErrPasswordEmpty) ||
		errors.Is(err, services.ErrPasswordTooShort) ||
		errors.Is(err, services.ErrPasswordTooLong) ||
		errors.Is(err, services.ErrPasswordNoUppercase) ||
		errors.Is(err, services.ErrPasswordNoLowercase) ||
		errors.Is(err, services.ErrPasswordNoDigit) ||
		errors.Is(err, services.ErrPasswordNoSpecial)
}
