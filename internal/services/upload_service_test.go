package services

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/internal/config"

	"github.com/stretchr/testify/suite"
)

// UploadServiceTestSuite defines the test suite for UploadService
type UploadServiceTestSuite struct {
	suite.Suite
	baseDir string
	metrics *stubMetrics
	service UploadServiceInterface
}

// SetupTest runs before each test
func (s *UploadServiceTestSuite) SetupTest() {
	s.baseDir = s.T().TempDir()
	s.metrics = newStubMetrics()

	cfg := config.UploadConfig{
		BaseDir:           s.baseDir,
		ProfileDir:        filepath.Join(s.baseDir, "profile"),
		ReceiptDir:        filepath.Join(s.baseDir, "receipts"),
		MaxSizeBytes:      1024,
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif", "pdf"},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewUploadService(cfg, s.metrics, logger)
}

// TestUploadServiceSuite runs the test suite
func TestUploadServiceSuite(t *testing.T) {
	suite.Run(t, new(UploadServiceTestSuite))
}

func (s *UploadServiceTestSuite) TestSaveReceipt_Success() {
	content := strings.NewReader("fake pdf bytes")

	stored, err := s.service.SaveReceipt("receipt.pdf", 14, content)

	s.Require().NoError(err)
	s.True(strings.HasSuffix(stored, "_receipt.pdf"))
	s.NotEqual("receipt.pdf", stored, "stored name carries a timestamp prefix")

	file, err := s.service.Open("receipt", stored)
	s.Require().NoError(err)
	defer file.Close()

	data, err := io.ReadAll(file)
	s.Require().NoError(err)
	s.Equal("fake pdf bytes", string(data))
}

func (s *UploadServiceTestSuite) TestSaveProfilePic_Success() {
	stored, err := s.service.SaveProfilePic("avatar.png", 5, strings.NewReader("image"))

	s.Require().NoError(err)
	s.True(strings.HasSuffix(stored, "_avatar.png"))
}

func (s *UploadServiceTestSuite) TestSave_DisallowedExtension() {
	_, err := s.service.SaveReceipt("malware.exe", 5, strings.NewReader("nope"))
	s.ErrorIs(err, ErrExtensionNotAllowed)

	_, err = s.service.SaveReceipt("noextension", 5, strings.NewReader("nope"))
	s.ErrorIs(err, ErrExtensionNotAllowed)
}

func (s *UploadServiceTestSuite) TestSave_TooLargeByDeclaredSize() {
	_, err := s.service.SaveReceipt("big.pdf", 2048, strings.NewReader("x"))
	s.ErrorIs(err, ErrFileTooLarge)
}

func (s *UploadServiceTestSuite) TestSave_TooLargeByActualContent() {
	// Declared size lies; the limit is enforced on actual bytes as well
	content := strings.NewReader(strings.Repeat("x", 2048))

	_, err := s.service.SaveReceipt("big.pdf", 100, content)
	s.ErrorIs(err, ErrFileTooLarge)
}

func (s *UploadServiceTestSuite) TestSave_SanitizesPathComponents() {
	stored, err := s.service.SaveReceipt("../../etc/passwd.png", 5, strings.NewReader("image"))

	s.Require().NoError(err)
	s.NotContains(stored, "/")
	s.NotContains(stored, "..")
}

func (s *UploadServiceTestSuite) TestOpen_RejectsTraversal() {
	_, err := s.service.Open("receipt", "../profile/secret.png")
	s.ErrorIs(err, ErrInvalidUploadPath)

	_, err = s.service.Open("bogus-kind", "file.png")
	s.ErrorIs(err, ErrInvalidUploadPath)
}

func (s *UploadServiceTestSuite) TestOpen_NotFound() {
	_, err := s.service.Open("receipt", "1700000000_missing.pdf")
	s.ErrorIs(err, ErrUploadedFileNotFound)
}
