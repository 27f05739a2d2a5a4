package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/database"
	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *database.DB
	user    *models.User
	other   *models.User
	service services.TransactionServiceInterface
	handler *TransactionHandler
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()

	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "other@example.com")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	tagService := services.NewTagService(repositories.NewTagRepository(s.db.DB))
	auditService := services.NewAuditService(repositories.NewAuditLogRepository(s.db.DB), logger)

	s.service = services.NewTransactionService(transactionRepo, tagService, auditService, noopMetrics{}, logger)
	s.handler = NewTransactionHandler(s.service)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// newContext builds an authenticated echo context the way RequireAuth
// leaves it
func (s *TransactionHandlerTestSuite) newContext(method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	c := s.echo.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func (s *TransactionHandlerTestSuite) createViaService(userID uuid.UUID) *models.Transaction {
	transaction, err := s.service.Create(userID, &dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Category: "groceries",
		Amount:   "42.50",
		Tags:     "food",
	})
	s.Require().NoError(err)
	return transaction
}

func (s *TransactionHandlerTestSuite) TestCreate_Success() {
	body := `{"type":"expense","category":"groceries","amount":"42.50","tags":"food, weekly"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body, s.user.ID)

	s.Require().NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response SuccessResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Transaction created successfully", response.Message)

	data := response.Data.(map[string]interface{})
	s.Equal("expense", data["type"])
	s.Equal("42.50", data["amount"])
}

func (s *TransactionHandlerTestSuite) TestCreate_InvalidType() {
	body := `{"type":"transfer","category":"misc","amount":"10"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body, s.user.ID)

	err := s.handler.Create(c)

	// Validator errors surface through the HTTP error handler
	s.Error(err)
	s.Equal(http.StatusOK, rec.Code, "response not written by handler itself")
}

func (s *TransactionHandlerTestSuite) TestCreate_MalformedAmount() {
	body := `{"type":"expense","category":"misc","amount":"abc"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body, s.user.ID)

	s.Require().NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("TRANSACTION_002", response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestGet_Success() {
	transaction := s.createViaService(s.user.ID)

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions/"+transaction.ID.String(), "", s.user.ID)
	c.SetParamNames("id")
	c.SetParamValues(transaction.ID.String())

	s.Require().NoError(s.handler.Get(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestGet_OtherUsersTransactionForbidden() {
	transaction := s.createViaService(s.user.ID)

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions/"+transaction.ID.String(), "", s.other.ID)
	c.SetParamNames("id")
	c.SetParamValues(transaction.ID.String())

	s.Require().NoError(s.handler.Get(c))
	s.Equal(http.StatusForbidden, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("AUTH_005", response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestGet_MissingTransactionNotFound() {
	missing := uuid.New()
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions/"+missing.String(), "", s.user.ID)
	c.SetParamNames("id")
	c.SetParamValues(missing.String())

	s.Require().NoError(s.handler.Get(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("TRANSACTION_001", response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestGet_InvalidID() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions/nope", "", s.user.ID)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	s.Require().NoError(s.handler.Get(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestList() {
	s.createViaService(s.user.ID)
	s.createViaService(s.user.ID)
	s.createViaService(s.other.ID)

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions", "", s.user.ID)

	s.Require().NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(2, response.Total)
	s.Len(response.Transactions, 2)
}

func (s *TransactionHandlerTestSuite) TestUpdate_Success() {
	transaction := s.createViaService(s.user.ID)

	body := `{"type":"income","category":"freelance","amount":"250","tags":"work"}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/"+transaction.ID.String(), body, s.user.ID)
	c.SetParamNames("id")
	c.SetParamValues(transaction.ID.String())

	s.Require().NoError(s.handler.Update(c))
	s.Equal(http.StatusOK, rec.Code)

	stored, err := s.service.Get(s.user.ID, transaction.ID)
	s.Require().NoError(err)
	s.Equal("freelance", stored.Category)
}

func (s *TransactionHandlerTestSuite) TestDelete_Success() {
	transaction := s.createViaService(s.user.ID)

	c, rec := s.newContext(http.MethodDelete, "/api/v1/transactions/"+transaction.ID.String(), "", s.user.ID)
	c.SetParamNames("id")
	c.SetParamValues(transaction.ID.String())

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)

	_, err := s.service.Get(s.user.ID, transaction.ID)
	s.ErrorIs(err, repositories.ErrTransactionNotFound)
}

func (s *TransactionHandlerTestSuite) TestMissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.List(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
