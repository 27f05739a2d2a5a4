package handlers

import (
	"errors"
	"net/http"

	"fintrack/internal/dto"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction CRUD endpoints
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Create handles adding a new transaction
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Create(userID, &req)
	if err != nil {
		if code, ok := transactionErrorCode(err); ok {
			return SendError(c, code, apperrors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    services.TransactionToResponse(transaction),
		Message: "Transaction created successfully",
	})
}

// Get handles fetching a single transaction by ID
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat, apperrors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionService.Get(userID, transactionID)
	if err != nil {
		return h.mapLookupError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: services.TransactionToResponse(transaction),
	})
}

// List handles fetching all transactions for the authenticated user,
// newest first
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: services.TransactionsToResponse(transactions),
		Total:        len(transactions),
	})
}

// Update handles editing a transaction
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat, apperrors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Update(userID, transactionID, &req)
	if err != nil {
		if code, ok := transactionErrorCode(err); ok {
			return SendError(c, code, apperrors.WithDetails(err.Error()))
		}
		return h.mapLookupError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    services.TransactionToResponse(transaction),
		Message: "Transaction updated successfully",
	})
}

// Delete handles removing a transaction
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat, apperrors.WithDetails("Invalid transaction ID"))
	}

	if err := h.transactionService.Delete(userID, transactionID); err != nil {
		return h.mapLookupError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Transaction deleted successfully",
	})
}

// mapLookupError maps lookup failures to responses. Acting on another
// user's transaction is an authorization refusal, kept distinct from a
// missing transaction.
func (h *TransactionHandler) mapLookupError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrNotOwner) {
		return SendError(c, apperrors.AuthInsufficientPermission)
	}
	if errors.Is(err, repositories.ErrTransactionNotFound) {
		return SendError(c, apperrors.TransactionNotFound)
	}
	return SendSystemError(c, err)
}

// transactionErrorCode maps model validation failures to API error codes
func transactionErrorCode(err error) (apperrors.ErrorCode, bool) {
	switch {
	case errors.Is(err, models.ErrInvalidAmount):
		return apperrors.TransactionInvalidAmount, true
	case errors.Is(err, models.ErrInvalidTransactionType):
		return apperrors.TransactionInvalidType, true
	case errors.Is(err, models.ErrInvalidRecurringPeriod):
		return apperrors.TransactionInvalidRecurring, true
	}
	return "", false
}
