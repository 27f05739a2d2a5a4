package services

import (
	"log/slog"

	"github.com/google/uuid"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
)

// AuditService records security-relevant events. Audit failures are
// logged but never propagated; an unavailable audit trail must not block
// the operation that triggered it.
type AuditService struct {
	auditRepo repositories.AuditLogRepositoryInterface
	logger    *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditLogRepositoryInterface, logger *slog.Logger) AuditServiceInterface {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record persists an audit log entry
func (s *AuditService) Record(userID *uuid.UUID, action, resource, resourceID, ipAddress, userAgent string, metadata map[string]interface{}) {
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata:   models.JSONMap(metadata),
	}

	if err := s.auditRepo.Create(entry); err != nil {
		s.logger.Error("Failed to record audit log",
			slog.String("action", action),
			slog.String("resource", resource),
			slog.String("error", err.Error()))
	}
}
