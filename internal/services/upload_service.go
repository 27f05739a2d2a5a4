package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/config"
)

var (
	ErrFileTooLarge         = errors.New("file exceeds maximum upload size")
	ErrExtensionNotAllowed  = errors.New("file extension is not allowed")
	ErrInvalidUploadPath    = errors.New("invalid upload path")
	ErrUploadedFileNotFound = errors.New("uploaded file not found")
)

// UploadService stores uploaded files on the local filesystem. Profile
// pictures and receipts live in separate subdirectories under the
// configured base directory. Stored filenames carry a Unix timestamp
// prefix so repeated uploads of the same name never collide.
type UploadService struct {
	config  config.UploadConfig
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(cfg config.UploadConfig, metrics MetricsRecorderInterface, logger *slog.Logger) UploadServiceInterface {
	return &UploadService{
		config:  cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// SaveProfilePic stores a profile picture and returns the stored filename
func (s *UploadService) SaveProfilePic(filename string, size int64, content io.Reader) (string, error) {
	stored, err := s.save(s.config.ProfileDir, filename, size, content)
	if err != nil {
		return "", err
	}
	s.metrics.RecordUploadStored("profile")
	return stored, nil
}

// SaveReceipt stores a receipt attachment and returns the stored filename
func (s *UploadService) SaveReceipt(filename string, size int64, content io.Reader) (string, error) {
	stored, err := s.save(s.config.ReceiptDir, filename, size, content)
	if err != nil {
		return "", err
	}
	s.metrics.RecordUploadStored("receipt")
	return stored, nil
}

// Open opens a previously stored file by kind ("profile" or "receipt")
// and stored filename. The filename must not escape the upload directory.
func (s *UploadService) Open(kind, filename string) (io.ReadCloser, error) {
	var dir string
	switch kind {
	case "profile":
		dir = s.config.ProfileDir
	case "receipt":
		dir = s.config.ReceiptDir
	default:
		return nil, ErrInvalidUploadPath
	}

	clean := filepath.Base(filepath.Clean(filename))
	if clean == "." || clean == ".." || clean != filename {
		return nil, ErrInvalidUploadPath
	}

	file, err := os.Open(filepath.Join(dir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUploadedFileNotFound
		}
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	return file, nil
}

func (s *UploadService) save(dir, filename string, size int64, content io.Reader) (string, error) {
	if size > s.config.MaxSizeBytes {
		return "", ErrFileTooLarge
	}

	sanitized := sanitizeFilename(filename)
	if sanitized == "" {
		return "", ErrInvalidUploadPath
	}

	if !s.extensionAllowed(sanitized) {
		return "", ErrExtensionNotAllowed
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	stored := fmt.Sprintf("%d_%s", time.Now().Unix(), sanitized)
	path := filepath.Join(dir, stored)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	// LimitReader guards against clients lying about Content-Length
	written, err := io.Copy(out, io.LimitReader(content, s.config.MaxSizeBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if written > s.config.MaxSizeBytes {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	s.logger.Info("Stored upload",
		slog.String("filename", stored),
		slog.Int64("bytes", written))

	return stored, nil
}

func (s *UploadService) extensionAllowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range s.config.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// sanitizeFilename strips path components and replaces characters that
// are unsafe in filenames, keeping letters, digits, dot, dash, underscore
func sanitizeFilename(filename string) string {
	base := filepath.Base(filepath.Clean(strings.ReplaceAll(filename, "\\", "/")))
	if base == "." || base == ".." || base == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), ".")
	return sanitized
}
