package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	apperrors "github.com/alexmail/alexmail-backend/internal/errors"
	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memoryStorage is an in-memory FileStorage for tests
type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	next  int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (m *memoryStorage) Save(filename string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	path := fmt.Sprintf("mem/%d-%s", m.next, filename)
	m.files[path] = data
	return path, nil
}

func (m *memoryStorage) Get(filePath string) (io.ReadCloser, error) {
	data, err := m.ReadBytes(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) ReadBytes(filePath string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filePath]
	if !ok {
		return nil, fmt.Errorf("file %s not stored", filePath)
	}
	return data, nil
}

func (m *memoryStorage) Delete(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filePath)
	return nil
}

// newTestLogger returns a logger that discards all output
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDB opens an in-memory SQLite database with migrated models
func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Mail{}, &models.Attachment{}))
	return db
}

// MailServiceTestSuite is the test suite for MailService
type MailServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	mailRepo repository.MailRepository
	userRepo repository.UserRepository
	storage  *memoryStorage
	service  MailService
	alice    *models.User
	bob      *models.User
}

// SetupSuite runs once before all tests
func (s *MailServiceTestSuite) SetupSuite() {
	s.db = newTestDB(s.T())
	s.mailRepo = repository.NewMailRepository(s.db)
	s.userRepo = repository.NewUserRepository(s.db)
}

// TearDownSuite runs once after all tests
func (s *MailServiceTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test - clean data, fresh storage and accounts
func (s *MailServiceTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM attachments")
	s.db.Exec("DELETE FROM mails")
	s.db.Exec("DELETE FROM users")

	s.storage = newMemoryStorage()
	s.service = NewMailService(s.mailRepo, s.userRepo, s.storage, newTestLogger())

	s.alice = &models.User{Email: "alice@example.com", PasswordHash: "hash", Folders: models.FolderList{}}
	s.bob = &models.User{Email: "bob@example.com", PasswordHash: "hash", Folders: models.FolderList{}}
	require.NoError(s.T(), s.db.Create(s.alice).Error)
	require.NoError(s.T(), s.db.Create(s.bob).Error)
}

// TestMailServiceTestSuite runs the test suite
func TestMailServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MailServiceTestSuite))
}

func (s *MailServiceTestSuite) compose(receivers ...string) models.ComposeEmail {
	return models.ComposeEmail{
		Sender:    "alice@example.com",
		Receivers: receivers,
		Subject:   "Hello",
		Body:      "Body text",
		Priority:  3,
	}
}

// ==================== Send Tests ====================

func (s *MailServiceTestSuite) TestSend_CreatesSentCopyAndInboxMirror() {
	// Act
	err := s.service.Send(context.Background(), s.compose("bob@example.com"))

	// Assert
	require.NoError(s.T(), err)

	sent, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.alice.ID, models.FolderSent)
	require.NoError(s.T(), err)
	require.Len(s.T(), sent, 1)
	assert.True(s.T(), sent[0].IsRead)
	assert.Equal(s.T(), "bob@example.com", sent[0].Receiver)

	inbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), inbox, 1)
	assert.False(s.T(), inbox[0].IsRead)
	assert.Equal(s.T(), "alice@example.com", inbox[0].Sender)
}

func (s *MailServiceTestSuite) TestSend_MultipleReceiversJoined() {
	// Arrange
	carol := &models.User{Email: "carol@example.com", PasswordHash: "hash"}
	require.NoError(s.T(), s.db.Create(carol).Error)

	// Act
	err := s.service.Send(context.Background(), s.compose("bob@example.com", "carol@example.com"))

	// Assert
	require.NoError(s.T(), err)

	sent, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.alice.ID, models.FolderSent)
	require.NoError(s.T(), err)
	require.Len(s.T(), sent, 1)
	assert.Equal(s.T(), "bob@example.com, carol@example.com", sent[0].Receiver)

	carolInbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), carol.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	assert.Len(s.T(), carolInbox, 1)
}

func (s *MailServiceTestSuite) TestSend_UnknownReceiverSkipped() {
	// Act
	err := s.service.Send(context.Background(), s.compose("nobody@elsewhere.com"))

	// Assert
	require.NoError(s.T(), err)

	sent, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.alice.ID, models.FolderSent)
	require.NoError(s.T(), err)
	assert.Len(s.T(), sent, 1)
}

func (s *MailServiceTestSuite) TestSend_UnknownSender() {
	// Arrange
	dto := s.compose("bob@example.com")
	dto.Sender = "ghost@example.com"

	// Act
	err := s.service.Send(context.Background(), dto)

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrUserNotFound)
}

// ==================== SendWithAttachments Tests ====================

func (s *MailServiceTestSuite) TestSendWithAttachments_StoresPerCopyRows() {
	// Arrange
	uploads := []AttachmentUpload{
		{FileName: "report.pdf", ContentType: "application/pdf", Size: 4, Content: bytes.NewReader([]byte("data"))},
	}

	// Act
	err := s.service.SendWithAttachments(context.Background(), s.compose("bob@example.com"), uploads)

	// Assert
	require.NoError(s.T(), err)

	sent, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.alice.ID, models.FolderSent)
	require.NoError(s.T(), err)
	require.Len(s.T(), sent, 1)
	require.Len(s.T(), sent[0].Attachments, 1)

	inbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), inbox, 1)
	require.Len(s.T(), inbox[0].Attachments, 1)

	// Separate rows, same stored blob
	assert.NotEqual(s.T(), sent[0].Attachments[0].ID, inbox[0].Attachments[0].ID)
	assert.Equal(s.T(), sent[0].Attachments[0].FilePath, inbox[0].Attachments[0].FilePath)
}

func (s *MailServiceTestSuite) TestSendWithAttachments_BlockedExtension() {
	// Arrange
	uploads := []AttachmentUpload{
		{FileName: "malware.exe", ContentType: "application/octet-stream", Size: 4, Content: bytes.NewReader([]byte("data"))},
	}

	// Act
	err := s.service.SendWithAttachments(context.Background(), s.compose("bob@example.com"), uploads)

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidInput)

	sent, listErr := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.alice.ID, models.FolderSent)
	require.NoError(s.T(), listErr)
	assert.Empty(s.T(), sent)
}

// ==================== Draft Tests ====================

func (s *MailServiceTestSuite) TestDraft_StartsReadInDrafts() {
	// Act
	id, err := s.service.Draft(context.Background(), s.compose("bob@example.com"))

	// Assert
	require.NoError(s.T(), err)
	require.NotZero(s.T(), id)

	draft, err := s.mailRepo.GetByID(context.Background(), id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.FolderDrafts, draft.FolderName)
	assert.True(s.T(), draft.IsRead)
}

func (s *MailServiceTestSuite) TestUpdateDraft_OverwritesContent() {
	// Arrange
	id, err := s.service.Draft(context.Background(), s.compose("bob@example.com"))
	require.NoError(s.T(), err)

	updated := s.compose("carol@example.com")
	updated.Subject = "Revised"
	updated.Priority = 5

	// Act
	err = s.service.UpdateDraft(context.Background(), id, updated)

	// Assert
	require.NoError(s.T(), err)
	draft, err := s.mailRepo.GetByID(context.Background(), id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Revised", draft.Subject)
	assert.Equal(s.T(), "carol@example.com", draft.Receiver)
	assert.Equal(s.T(), 5, draft.Priority)
	assert.Equal(s.T(), models.FolderDrafts, draft.FolderName)
}

func (s *MailServiceTestSuite) TestUpdateDraft_NotADraft() {
	// Arrange
	require.NoError(s.T(), s.service.Send(context.Background(), s.compose("bob@example.com")))
	sent, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.alice.ID, models.FolderSent)
	require.NoError(s.T(), err)
	require.Len(s.T(), sent, 1)

	// Act
	err = s.service.UpdateDraft(context.Background(), sent[0].ID, s.compose("bob@example.com"))

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrNotDraft)
}

func (s *MailServiceTestSuite) TestUpdateDraft_NotFound() {
	// Act
	err := s.service.UpdateDraft(context.Background(), 99999, s.compose("bob@example.com"))

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrMailNotFound)
}

// ==================== Read Flag Tests ====================

func (s *MailServiceTestSuite) TestMarkRead_Toggles() {
	// Arrange
	require.NoError(s.T(), s.service.Send(context.Background(), s.compose("bob@example.com")))
	inbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), inbox, 1)
	id := inbox[0].ID

	// Act & Assert
	require.NoError(s.T(), s.service.MarkRead(context.Background(), id, true))
	mail, err := s.mailRepo.GetByID(context.Background(), id)
	require.NoError(s.T(), err)
	assert.True(s.T(), mail.IsRead)

	require.NoError(s.T(), s.service.MarkRead(context.Background(), id, false))
	mail, err = s.mailRepo.GetByID(context.Background(), id)
	require.NoError(s.T(), err)
	assert.False(s.T(), mail.IsRead)
}

// ==================== Trash Tests ====================

func (s *MailServiceTestSuite) sendAndGetInboxMail() *models.Mail {
	require.NoError(s.T(), s.service.Send(context.Background(), s.compose("bob@example.com")))
	inbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), inbox, 1)
	return &inbox[0]
}

func (s *MailServiceTestSuite) TestMoveToTrash_SetsFolderAndTimestamp() {
	// Arrange
	mail := s.sendAndGetInboxMail()

	// Act
	err := s.service.MoveToTrash(context.Background(), mail.ID, s.bob.ID)

	// Assert
	require.NoError(s.T(), err)
	trashed, err := s.mailRepo.GetByID(context.Background(), mail.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.FolderTrash, trashed.FolderName)
	require.NotNil(s.T(), trashed.DeletedAt)
	assert.WithinDuration(s.T(), time.Now(), *trashed.DeletedAt, 5*time.Second)
}

func (s *MailServiceTestSuite) TestMoveToTrash_WrongOwner() {
	// Arrange
	mail := s.sendAndGetInboxMail()

	// Act
	err := s.service.MoveToTrash(context.Background(), mail.ID, s.alice.ID)

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrMailNotFound)

	unchanged, getErr := s.mailRepo.GetByID(context.Background(), mail.ID)
	require.NoError(s.T(), getErr)
	assert.Equal(s.T(), models.FolderInbox, unchanged.FolderName)
}

func (s *MailServiceTestSuite) TestMoveToTrashAny_SkipsOwnershipCheck() {
	// Arrange
	mail := s.sendAndGetInboxMail()

	// Act
	err := s.service.MoveToTrashAny(context.Background(), mail.ID)

	// Assert
	require.NoError(s.T(), err)
	trashed, err := s.mailRepo.GetByID(context.Background(), mail.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.FolderTrash, trashed.FolderName)
}

func (s *MailServiceTestSuite) TestMoveToTrash_ExcludedFromAllListing() {
	// Arrange
	mail := s.sendAndGetInboxMail()
	require.NoError(s.T(), s.service.MoveToTrash(context.Background(), mail.ID, s.bob.ID))

	// Act
	all, err := s.mailRepo.ListByOwnerInboxAndSent(context.Background(), s.bob.ID)

	// Assert
	require.NoError(s.T(), err)
	assert.Empty(s.T(), all)
}

func (s *MailServiceTestSuite) TestDeletionTimestampSurvivesLaterUpdates() {
	// Arrange
	mail := s.sendAndGetInboxMail()
	require.NoError(s.T(), s.service.MoveToTrash(context.Background(), mail.ID, s.bob.ID))

	// Act
	require.NoError(s.T(), s.service.MarkRead(context.Background(), mail.ID, true))

	// Assert
	after, err := s.mailRepo.GetByID(context.Background(), mail.ID)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), after.DeletedAt)
}

func (s *MailServiceTestSuite) TestHardDelete_RemovesPermanently() {
	// Arrange
	mail := s.sendAndGetInboxMail()

	// Act
	err := s.service.HardDelete(context.Background(), mail.ID)

	// Assert
	require.NoError(s.T(), err)
	_, err = s.mailRepo.GetByID(context.Background(), mail.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *MailServiceTestSuite) TestHardDelete_NotFound() {
	// Act
	err := s.service.HardDelete(context.Background(), 99999)

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrMailNotFound)
}

// ==================== Copy Tests ====================

func (s *MailServiceTestSuite) TestCopyToFolder_FreshIDAndUppercasedFolder() {
	// Arrange
	mail := s.sendAndGetInboxMail()

	// Act
	err := s.service.CopyToFolder(context.Background(), mail.ID, "work")

	// Assert
	require.NoError(s.T(), err)

	copies, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, "WORK")
	require.NoError(s.T(), err)
	require.Len(s.T(), copies, 1)
	assert.NotEqual(s.T(), mail.ID, copies[0].ID)
	assert.Equal(s.T(), mail.Subject, copies[0].Subject)
	assert.Nil(s.T(), copies[0].DeletedAt)

	// Source untouched
	source, err := s.mailRepo.GetByID(context.Background(), mail.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.FolderInbox, source.FolderName)
}

func (s *MailServiceTestSuite) TestCopyToFolder_AttachmentsIsolated() {
	// Arrange
	uploads := []AttachmentUpload{
		{FileName: "notes.txt", ContentType: "text/plain", Size: 5, Content: bytes.NewReader([]byte("notes"))},
	}
	require.NoError(s.T(), s.service.SendWithAttachments(context.Background(), s.compose("bob@example.com"), uploads))
	inbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), inbox, 1)

	// Act
	require.NoError(s.T(), s.service.CopyToFolder(context.Background(), inbox[0].ID, "ARCHIVE"))

	// Assert
	copies, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, "ARCHIVE")
	require.NoError(s.T(), err)
	require.Len(s.T(), copies, 1)
	require.Len(s.T(), copies[0].Attachments, 1)
	assert.NotEqual(s.T(), inbox[0].Attachments[0].ID, copies[0].Attachments[0].ID)
}

func (s *MailServiceTestSuite) TestCopyToFolder_BlankName() {
	// Arrange
	mail := s.sendAndGetInboxMail()

	// Act
	err := s.service.CopyToFolder(context.Background(), mail.ID, "   ")

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidInput)
}

// ==================== Purge Tests ====================

func (s *MailServiceTestSuite) expireTrash(id uint, age time.Duration) {
	past := time.Now().Add(-age)
	require.NoError(s.T(), s.db.Model(&models.Mail{}).Where("id = ?", id).
		Update("deleted_at", past).Error)
}

func (s *MailServiceTestSuite) TestPurgeExpiredTrash_RemovesOnlyExpired() {
	// Arrange
	expired := s.sendAndGetInboxMail()
	require.NoError(s.T(), s.service.MoveToTrash(context.Background(), expired.ID, s.bob.ID))
	s.expireTrash(expired.ID, 10*time.Minute)

	require.NoError(s.T(), s.service.Send(context.Background(), s.compose("bob@example.com")))
	inbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), inbox, 1)
	fresh := inbox[0]
	require.NoError(s.T(), s.service.MoveToTrash(context.Background(), fresh.ID, s.bob.ID))

	// Act
	count, err := s.service.PurgeExpiredTrash(context.Background(), time.Minute)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, count)

	_, err = s.mailRepo.GetByID(context.Background(), expired.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	kept, err := s.mailRepo.GetByID(context.Background(), fresh.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.FolderTrash, kept.FolderName)
}

func (s *MailServiceTestSuite) TestPurgeExpiredTrash_SecondPassIsNoOp() {
	// Arrange
	mail := s.sendAndGetInboxMail()
	require.NoError(s.T(), s.service.MoveToTrash(context.Background(), mail.ID, s.bob.ID))
	s.expireTrash(mail.ID, 10*time.Minute)

	first, err := s.service.PurgeExpiredTrash(context.Background(), time.Minute)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, first)

	// Act
	second, err := s.service.PurgeExpiredTrash(context.Background(), time.Minute)

	// Assert
	require.NoError(s.T(), err)
	assert.Zero(s.T(), second)
}

// ==================== Folder Tests ====================

func (s *MailServiceTestSuite) TestCreateFolder_Success() {
	// Act
	err := s.service.CreateFolder(context.Background(), "bob@example.com", "WORK")

	// Assert
	require.NoError(s.T(), err)
	folders, err := s.service.ListFolders(context.Background(), "bob@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"WORK"}, folders)
}

func (s *MailServiceTestSuite) TestCreateFolder_Duplicate() {
	// Arrange
	require.NoError(s.T(), s.service.CreateFolder(context.Background(), "bob@example.com", "WORK"))

	// Act
	err := s.service.CreateFolder(context.Background(), "bob@example.com", "WORK")

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrAlreadyExists)
}

func (s *MailServiceTestSuite) TestCreateFolder_CaseSensitiveNames() {
	// Arrange
	require.NoError(s.T(), s.service.CreateFolder(context.Background(), "bob@example.com", "Work"))

	// Act
	err := s.service.CreateFolder(context.Background(), "bob@example.com", "WORK")

	// Assert
	assert.NoError(s.T(), err)
	folders, err := s.service.ListFolders(context.Background(), "bob@example.com")
	require.NoError(s.T(), err)
	assert.Len(s.T(), folders, 2)
}

func (s *MailServiceTestSuite) TestDeleteFolder_RemovesNameAndContents() {
	// Arrange
	require.NoError(s.T(), s.service.CreateFolder(context.Background(), "bob@example.com", "WORK"))
	mail := s.sendAndGetInboxMail()
	require.NoError(s.T(), s.service.CopyToFolder(context.Background(), mail.ID, "work"))

	// Act
	err := s.service.DeleteFolder(context.Background(), "bob@example.com", "WORK")

	// Assert
	require.NoError(s.T(), err)

	folders, err := s.service.ListFolders(context.Background(), "bob@example.com")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), folders)

	remaining, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, "WORK")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), remaining)
}

func (s *MailServiceTestSuite) TestDeleteFolder_AbsentNameStillDeletesMail() {
	// Arrange - mail sits in a folder that was never registered in the list
	mail := s.sendAndGetInboxMail()
	require.NoError(s.T(), s.service.CopyToFolder(context.Background(), mail.ID, "STRAY"))

	// Act
	err := s.service.DeleteFolder(context.Background(), "bob@example.com", "STRAY")

	// Assert
	require.NoError(s.T(), err)
	remaining, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, "STRAY")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), remaining)
}

func (s *MailServiceTestSuite) TestRenameFolder_SwapsNameAndRewritesMail() {
	// Arrange
	require.NoError(s.T(), s.service.CreateFolder(context.Background(), "bob@example.com", "WORK"))
	mail := s.sendAndGetInboxMail()
	require.NoError(s.T(), s.service.CopyToFolder(context.Background(), mail.ID, "work"))

	// Act
	err := s.service.RenameFolder(context.Background(), "bob@example.com", "WORK", "PROJECTS")

	// Assert
	require.NoError(s.T(), err)

	folders, err := s.service.ListFolders(context.Background(), "bob@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"PROJECTS"}, folders)

	moved, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, "PROJECTS")
	require.NoError(s.T(), err)
	assert.Len(s.T(), moved, 1)

	old, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, "WORK")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), old)
}

func (s *MailServiceTestSuite) TestRenameFolder_OldNameMissing() {
	// Act
	err := s.service.RenameFolder(context.Background(), "bob@example.com", "GHOST", "NEW")

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrFolderNotFound)
}

func (s *MailServiceTestSuite) TestRenameFolder_NewNameTaken() {
	// Arrange
	require.NoError(s.T(), s.service.CreateFolder(context.Background(), "bob@example.com", "WORK"))
	require.NoError(s.T(), s.service.CreateFolder(context.Background(), "bob@example.com", "PROJECTS"))

	// Act
	err := s.service.RenameFolder(context.Background(), "bob@example.com", "WORK", "PROJECTS")

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrAlreadyExists)
}

func (s *MailServiceTestSuite) TestFolderOps_UnknownUser() {
	// Act
	_, listErr := s.service.ListFolders(context.Background(), "ghost@example.com")
	createErr := s.service.CreateFolder(context.Background(), "ghost@example.com", "WORK")

	// Assert
	assert.ErrorIs(s.T(), listErr, apperrors.ErrUserNotFound)
	assert.ErrorIs(s.T(), createErr, apperrors.ErrUserNotFound)
}

// ==================== View Tests ====================

func (s *MailServiceTestSuite) TestGetMailView_InlinesAttachmentData() {
	// Arrange
	uploads := []AttachmentUpload{
		{FileName: "notes.txt", ContentType: "text/plain", Size: 5, Content: bytes.NewReader([]byte("notes"))},
	}
	require.NoError(s.T(), s.service.SendWithAttachments(context.Background(), s.compose("bob@example.com"), uploads))
	inbox, err := s.mailRepo.ListByOwnerAndFolder(context.Background(), s.bob.ID, models.FolderInbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), inbox, 1)

	// Act
	view, err := s.service.GetMailView(context.Background(), inbox[0].ID)

	// Assert
	require.NoError(s.T(), err)
	require.Len(s.T(), view.Attachments, 1)
	assert.Equal(s.T(), "notes.txt", view.Attachments[0].FileName)
	assert.Equal(s.T(), "bm90ZXM=", view.Attachments[0].FileData)
}

func (s *MailServiceTestSuite) TestGetMailView_NotFound() {
	// Act
	view, err := s.service.GetMailView(context.Background(), 99999)

	// Assert
	assert.ErrorIs(s.T(), err, apperrors.ErrMailNotFound)
	assert.Nil(s.T(), view)
}
