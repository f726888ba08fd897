package repository

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingStorage tracks deleted paths so tests can assert file cleanup
type recordingStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (r *recordingStorage) Save(filename string, content io.Reader) (string, error) {
	return "ab/" + filename, nil
}

func (r *recordingStorage) Get(filePath string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (r *recordingStorage) ReadBytes(filePath string) ([]byte, error) {
	return nil, nil
}

func (r *recordingStorage) Delete(filePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, filePath)
	return nil
}

var _ storage.FileStorage = (*recordingStorage)(nil)

// AttachmentRepositoryTestSuite is the test suite for AttachmentRepository
type AttachmentRepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repo     AttachmentRepository
	files    *recordingStorage
	testMail *models.Mail
}

// SetupSuite runs once before all tests
func (s *AttachmentRepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(&models.User{}, &models.Mail{}, &models.Attachment{})
	require.NoError(s.T(), err)

	s.db = db
}

// TearDownSuite runs once after all tests
func (s *AttachmentRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test - clean up data and create test fixtures
func (s *AttachmentRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM attachments")
	s.db.Exec("DELETE FROM mails")
	s.db.Exec("DELETE FROM users")

	s.files = &recordingStorage{}
	s.repo = NewAttachmentRepository(s.db, s.files)

	user := &models.User{Email: "alice@example.com", PasswordHash: "not-a-real-hash", Folders: models.FolderList{}}
	require.NoError(s.T(), s.db.Create(user).Error)

	s.testMail = &models.Mail{
		OwnerID:    user.ID,
		Sender:     "alice@example.com",
		Receiver:   "bob@example.com",
		Subject:    "Test Subject",
		Body:       "Test body",
		Priority:   3,
		Timestamp:  time.Now(),
		FolderName: models.FolderInbox,
	}
	require.NoError(s.T(), s.db.Create(s.testMail).Error)
}

// TestAttachmentRepositoryTestSuite runs the test suite
func TestAttachmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AttachmentRepositoryTestSuite))
}

func (s *AttachmentRepositoryTestSuite) newAttachment(name, path string) *models.Attachment {
	return &models.Attachment{
		MailID:      s.testMail.ID,
		FileName:    name,
		ContentType: "application/pdf",
		FilePath:    path,
		FileSize:    1024,
	}
}

// ==================== Create Tests ====================

func (s *AttachmentRepositoryTestSuite) TestCreate_Success() {
	att := s.newAttachment("report.pdf", "ab/report.pdf")

	err := s.repo.Create(context.Background(), att)

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), att.ID)
}

// ==================== GetByID Tests ====================

func (s *AttachmentRepositoryTestSuite) TestGetByID_Success() {
	att := s.newAttachment("report.pdf", "ab/report.pdf")
	require.NoError(s.T(), s.repo.Create(context.Background(), att))

	found, err := s.repo.GetByID(context.Background(), att.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "report.pdf", found.FileName)
	assert.Equal(s.T(), "ab/report.pdf", found.FilePath)
}

func (s *AttachmentRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(context.Background(), 9999)

	assert.ErrorIs(s.T(), err, ErrNotFound)
}

// ==================== ListByMail Tests ====================

func (s *AttachmentRepositoryTestSuite) TestListByMail_ReturnsAllForMail() {
	require.NoError(s.T(), s.repo.Create(context.Background(), s.newAttachment("a.pdf", "ab/a.pdf")))
	require.NoError(s.T(), s.repo.Create(context.Background(), s.newAttachment("b.pdf", "ab/b.pdf")))

	found, err := s.repo.ListByMail(context.Background(), s.testMail.ID)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), found, 2)
}

func (s *AttachmentRepositoryTestSuite) TestListByMail_EmptyForUnknownMail() {
	found, err := s.repo.ListByMail(context.Background(), 9999)

	assert.NoError(s.T(), err)
	assert.Empty(s.T(), found)
}

// ==================== Delete Tests ====================

func (s *AttachmentRepositoryTestSuite) TestDelete_RemovesRecordAndFile() {
	att := s.newAttachment("gone.pdf", "ab/gone.pdf")
	require.NoError(s.T(), s.repo.Create(context.Background(), att))

	err := s.repo.Delete(context.Background(), att.ID)

	assert.NoError(s.T(), err)

	_, err = s.repo.GetByID(context.Background(), att.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	assert.Contains(s.T(), s.files.deleted, "ab/gone.pdf")
}

func (s *AttachmentRepositoryTestSuite) TestDelete_NotFound() {
	err := s.repo.Delete(context.Background(), 9999)

	assert.ErrorIs(s.T(), err, ErrNotFound)
}
