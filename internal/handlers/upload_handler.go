package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler handles profile picture and receipt uploads plus serving
// of previously stored files
type UploadHandler struct {
	uploadService      services.UploadServiceInterface
	profileService     services.ProfileServiceInterface
	transactionService services.TransactionServiceInterface
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(
	uploadService services.UploadServiceInterface,
	profileService services.ProfileServiceInterface,
	transactionService services.TransactionServiceInterface,
) *UploadHandler {
	return &UploadHandler{
		uploadService:      uploadService,
		profileService:     profileService,
		transactionService: transactionService,
	}
}

// UploadProfilePic stores a new profile picture and points the user's
// profile at it
func (h *UploadHandler) UploadProfilePic(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Missing file field"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return SendSystemError(c, err)
	}
	defer src.Close()

	stored, err := h.uploadService.SaveProfilePic(fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		return h.mapUploadError(c, err)
	}

	if err := h.profileService.SetProfilePic(userID, stored); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    map[string]interface{}{"profile_pic": stored},
		Message: "Profile picture updated successfully",
	})
}

// UploadReceipt stores a receipt file and attaches it to the transaction
func (h *UploadHandler) UploadReceipt(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat, apperrors.WithDetails("Invalid transaction ID"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Missing file field"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return SendSystemError(c, err)
	}
	defer src.Close()

	stored, err := h.uploadService.SaveReceipt(fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		return h.mapUploadError(c, err)
	}

	if err := h.transactionService.AttachReceipt(userID, transactionID, stored); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			return SendError(c, apperrors.AuthInsufficientPermission)
		}
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return SendError(c, apperrors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    map[string]interface{}{"receipt": stored},
		Message: "Receipt attached successfully",
	})
}

// ServeProfilePic streams a stored profile picture
func (h *UploadHandler) ServeProfilePic(c echo.Context) error {
	return h.serve(c, "profile")
}

// ServeReceipt streams a stored receipt
func (h *UploadHandler) ServeReceipt(c echo.Context) error {
	return h.serve(c, "receipt")
}

func (h *UploadHandler) serve(c echo.Context, kind string) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	filename := c.Param("filename")

	file, err := h.uploadService.Open(kind, filename)
	if err != nil {
		return h.mapUploadError(c, err)
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return c.Stream(http.StatusOK, contentType, file)
}

func (h *UploadHandler) mapUploadError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrFileTooLarge):
		return SendError(c, apperrors.UploadTooLarge)
	case errors.Is(err, services.ErrExtensionNotAllowed):
		return SendError(c, apperrors.UploadInvalidFileType)
	case errors.Is(err, services.ErrUploadedFileNotFound), errors.Is(err, services.ErrInvalidUploadPath):
		return SendError(c, apperrors.UploadNotFound)
	}
	return SendSystemError(c, err)
}
