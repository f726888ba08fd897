package mocks

import (
	"context"
	"time"

	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockMailService is a mock implementation of services.MailService
type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) Send(ctx context.Context, dto models.ComposeEmail) error {
	args := m.Called(ctx, dto)
	return args.Error(0)
}

func (m *MockMailService) SendWithAttachments(ctx context.Context, dto models.ComposeEmail, uploads []services.AttachmentUpload) error {
	args := m.Called(ctx, dto, uploads)
	return args.Error(0)
}

func (m *MockMailService) Draft(ctx context.Context, dto models.ComposeEmail) (uint, error) {
	args := m.Called(ctx, dto)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockMailService) UpdateDraft(ctx context.Context, id uint, dto models.ComposeEmail) error {
	args := m.Called(ctx, id, dto)
	return args.Error(0)
}

func (m *MockMailService) MarkRead(ctx context.Context, id uint, read bool) error {
	args := m.Called(ctx, id, read)
	return args.Error(0)
}

func (m *MockMailService) GetMailView(ctx context.Context, id uint) (*models.EmailView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailView), args.Error(1)
}

func (m *MockMailService) MoveToTrash(ctx context.Context, id, ownerID uint) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockMailService) MoveToTrashAny(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMailService) HardDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMailService) CopyToFolder(ctx context.Context, id uint, folderName string) error {
	args := m.Called(ctx, id, folderName)
	return args.Error(0)
}

func (m *MockMailService) PurgeExpiredTrash(ctx context.Context, retention time.Duration) (int, error) {
	args := m.Called(ctx, retention)
	return args.Int(0), args.Error(1)
}

func (m *MockMailService) ListFolders(ctx context.Context, userEmail string) ([]string, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMailService) CreateFolder(ctx context.Context, userEmail, name string) error {
	args := m.Called(ctx, userEmail, name)
	return args.Error(0)
}

func (m *MockMailService) DeleteFolder(ctx context.Context, userEmail, name string) error {
	args := m.Called(ctx, userEmail, name)
	return args.Error(0)
}

func (m *MockMailService) RenameFolder(ctx context.Context, userEmail, oldName, newName string) error {
	args := m.Called(ctx, userEmail, oldName, newName)
	return args.Error(0)
}

// MockMailQueryService is a mock implementation of services.MailQueryService
type MockMailQueryService struct {
	mock.Mock
}

func (m *MockMailQueryService) ListByFolder(ctx context.Context, ownerEmail, folderName string) ([]models.EmailView, error) {
	args := m.Called(ctx, ownerEmail, folderName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EmailView), args.Error(1)
}

func (m *MockMailQueryService) SortInbox(ctx context.Context, receiverEmail, criterion string, ascending bool) ([]models.EmailView, error) {
	args := m.Called(ctx, receiverEmail, criterion, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EmailView), args.Error(1)
}

// MockUserService is a mock implementation of services.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockMailExporter is a mock implementation of services.MailExporter
type MockMailExporter struct {
	mock.Mock
}

func (m *MockMailExporter) ExportEML(ctx context.Context, id uint) ([]byte, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
