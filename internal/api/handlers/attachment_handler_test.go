package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/tests/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// AttachmentHandlerTestSuite is the test suite for AttachmentHandler
type AttachmentHandlerTestSuite struct {
	suite.Suite
	echo            *echo.Echo
	handler         *AttachmentHandler
	mockAttachments *mocks.MockAttachmentRepository
	mockMails       *mocks.MockMailRepository
	mockStorage     *mocks.MockFileStorage
}

// SetupTest runs before each test
func (s *AttachmentHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.mockAttachments = new(mocks.MockAttachmentRepository)
	s.mockMails = new(mocks.MockMailRepository)
	s.mockStorage = new(mocks.MockFileStorage)
	s.handler = NewAttachmentHandler(s.mockAttachments, s.mockMails, s.mockStorage)
}

// TearDownTest runs after each test
func (s *AttachmentHandlerTestSuite) TearDownTest() {
	s.mockAttachments.AssertExpectations(s.T())
	s.mockMails.AssertExpectations(s.T())
	s.mockStorage.AssertExpectations(s.T())
}

// TestAttachmentHandlerTestSuite runs the test suite
func TestAttachmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AttachmentHandlerTestSuite))
}

func (s *AttachmentHandlerTestSuite) createContext(path, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

// ==================== List Tests ====================

func (s *AttachmentHandlerTestSuite) TestList_Success() {
	s.mockMails.On("GetByID", mock.Anything, uint(7)).
		Return(&models.Mail{ID: 7}, nil)
	s.mockAttachments.On("ListByMail", mock.Anything, uint(7)).
		Return([]models.Attachment{
			{ID: 1, MailID: 7, FileName: "report.pdf", ContentType: "application/pdf", FileSize: 1024},
			{ID: 2, MailID: 7, FileName: "notes.txt", ContentType: "text/plain", FileSize: 64},
		}, nil)

	c, rec := s.createContext("/api/mail/7/attachments", "7")

	err := s.handler.List(c)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "report.pdf")
	assert.Contains(s.T(), rec.Body.String(), "notes.txt")
}

func (s *AttachmentHandlerTestSuite) TestList_MailNotFound() {
	s.mockMails.On("GetByID", mock.Anything, uint(9999)).
		Return(nil, repository.ErrNotFound)

	c, rec := s.createContext("/api/mail/9999/attachments", "9999")

	err := s.handler.List(c)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *AttachmentHandlerTestSuite) TestList_InvalidID() {
	c, rec := s.createContext("/api/mail/abc/attachments", "abc")

	err := s.handler.List(c)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

// ==================== Download Tests ====================

func (s *AttachmentHandlerTestSuite) TestDownload_StreamsFile() {
	s.mockAttachments.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Attachment{
			ID:          3,
			MailID:      7,
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			FilePath:    "ab/report.pdf",
			FileSize:    11,
		}, nil)
	s.mockStorage.On("Get", "ab/report.pdf").
		Return(io.NopCloser(strings.NewReader("pdf content")), nil)

	c, rec := s.createContext("/api/attachments/3/download", "3")

	err := s.handler.Download(c)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "pdf content", rec.Body.String())
	assert.Equal(s.T(), "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(s.T(), `attachment; filename="report.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(s.T(), "11", rec.Header().Get(echo.HeaderContentLength))
}

func (s *AttachmentHandlerTestSuite) TestDownload_DefaultsContentType() {
	s.mockAttachments.On("GetByID", mock.Anything, uint(4)).
		Return(&models.Attachment{ID: 4, FileName: "blob", FilePath: "cd/blob"}, nil)
	s.mockStorage.On("Get", "cd/blob").
		Return(io.NopCloser(strings.NewReader("raw")), nil)

	c, rec := s.createContext("/api/attachments/4/download", "4")

	err := s.handler.Download(c)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "application/octet-stream", rec.Header().Get(echo.HeaderContentType))
}

func (s *AttachmentHandlerTestSuite) TestDownload_NotFound() {
	s.mockAttachments.On("GetByID", mock.Anything, uint(9999)).
		Return(nil, repository.ErrNotFound)

	c, rec := s.createContext("/api/attachments/9999/download", "9999")

	err := s.handler.Download(c)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *AttachmentHandlerTestSuite) TestDownload_InvalidID() {
	c, rec := s.createContext("/api/attachments/abc/download", "abc")

	err := s.handler.Download(c)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}
