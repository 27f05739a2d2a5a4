package handlers

import (
	"errors"
	"net/http"

	"fintrack/internal/dto"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ProfileHandler handles profile read and update endpoints
type ProfileHandler struct {
	profileService services.ProfileServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Get returns the authenticated user's profile
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	user, err := h.profileService.Get(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, apperrors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: services.UserToResponse(user),
	})
}

// Update replaces the authenticated user's profile fields. All fields
// are validated before any write; a rejected update changes nothing.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	var req dto.UpdateProfileRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.profileService.Update(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return SendError(c, apperrors.UserAlreadyExists, apperrors.WithDetails("Email is already in use"))
		}
		if errors.Is(err, services.ErrInvalidBudget) {
			return SendError(c, apperrors.ValidationInvalidAmount, apperrors.WithDetails(err.Error()))
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, apperrors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    services.UserToResponse(user),
		Message: "Profile updated successfully",
	})
}
