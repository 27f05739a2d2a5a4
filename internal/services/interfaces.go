package services

import (
	"io"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
)

// AuthServiceInterface defines the contract for authentication operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest, ipAddress, userAgent string) error
}

// TokenServiceInterface defines the contract for JWT operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines the contract for password hashing and validation
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// SummaryServiceInterface defines the contract for dashboard aggregation
type SummaryServiceInterface interface {
	Summarize(transactions []models.Transaction) models.DashboardSummary
}

// TagServiceInterface defines the contract for tag resolution
type TagServiceInterface interface {
	ParseTagNames(raw string) []string
	Resolve(raw string) ([]models.Tag, error)
}

// TransactionServiceInterface defines the contract for transaction mutations and queries
type TransactionServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	Get(userID, transactionID uuid.UUID) (*models.Transaction, error)
	List(userID uuid.UUID) ([]models.Transaction, error)
	Update(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(userID, transactionID uuid.UUID) error
	AttachReceipt(userID, transactionID uuid.UUID, filename string) error
}

// ProfileServiceInterface defines the contract for profile management
type ProfileServiceInterface interface {
	Get(userID uuid.UUID) (*models.User, error)
	Update(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error)
	SetProfilePic(userID uuid.UUID, filename string) error
}

// ExportServiceInterface defines the contract for transaction exports
type ExportServiceInterface interface {
	ExportRows(transactions []models.Transaction) []dto.ExportRow
	WriteCSV(w io.Writer, transactions []models.Transaction) error
	WriteSpreadsheet(w io.Writer, transactions []models.Transaction) error
	SpreadsheetAvailable() bool
}

// SpreadsheetEncoder turns export rows into a binary spreadsheet document.
// The export service treats the encoder as optional; without one, only CSV
// export is offered.
type SpreadsheetEncoder interface {
	Encode(w io.Writer, header []string, rows []dto.ExportRow) error
}

// ReportServiceInterface defines the contract for period-bounded reports
type ReportServiceInterface interface {
	GenerateMonthlyReport(userID uuid.UUID, year, month int) (*dto.MonthlyReport, error)
}

// UploadServiceInterface defines the contract for stored file handling
type UploadServiceInterface interface {
	SaveProfilePic(filename string, size int64, content io.Reader) (string, error)
	SaveReceipt(filename string, size int64, content io.Reader) (string, error)
	Open(kind, filename string) (io.ReadCloser, error)
}

// AuditServiceInterface defines the contract for audit trail recording
type AuditServiceInterface interface {
	Record(userID *uuid.UUID, action, resource, resourceID, ipAddress, userAgent string, metadata map[string]interface{})
}

// MetricsRecorderInterface defines the contract for recording application metrics
type MetricsRecorderInterface interface {
	RecordTransactionMutation(operation, transactionType string)
	RecordDashboardRequest(duration time.Duration)
	RecordExport(format, status string)
	RecordAuthEvent(event, status string)
	RecordUploadStored(kind string)
}
