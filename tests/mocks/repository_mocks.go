// Package mocks provides testify mocks for repository, storage and service
// interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockMailRepository is a mock implementation of repository.MailRepository
type MockMailRepository struct {
	mock.Mock
}

func (m *MockMailRepository) Create(ctx context.Context, mail *models.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

func (m *MockMailRepository) CreateWithAttachments(ctx context.Context, mail *models.Mail, attachments []models.Attachment) error {
	args := m.Called(ctx, mail, attachments)
	return args.Error(0)
}

func (m *MockMailRepository) GetByID(ctx context.Context, id uint) (*models.Mail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mail), args.Error(1)
}

func (m *MockMailRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uint) (*models.Mail, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mail), args.Error(1)
}

func (m *MockMailRepository) Update(ctx context.Context, mail *models.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

func (m *MockMailRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMailRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMailRepository) DeleteByOwnerAndFolder(ctx context.Context, ownerID uint, folderName string) (int64, error) {
	args := m.Called(ctx, ownerID, folderName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMailRepository) RenameFolder(ctx context.Context, ownerID uint, oldName, newName string) (int64, error) {
	args := m.Called(ctx, ownerID, oldName, newName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMailRepository) ListByOwnerAndFolder(ctx context.Context, ownerID uint, folderName string) ([]models.Mail, error) {
	args := m.Called(ctx, ownerID, folderName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mail), args.Error(1)
}

func (m *MockMailRepository) ListByOwnerInboxAndSent(ctx context.Context, ownerID uint) ([]models.Mail, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mail), args.Error(1)
}

func (m *MockMailRepository) ListByReceiverAndFolderBySender(ctx context.Context, receiver, folderName string) ([]models.Mail, error) {
	args := m.Called(ctx, receiver, folderName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mail), args.Error(1)
}

func (m *MockMailRepository) ListByReceiver(ctx context.Context, receiver string) ([]models.Mail, error) {
	args := m.Called(ctx, receiver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mail), args.Error(1)
}

func (m *MockMailRepository) ListTrashDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Mail, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mail), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockAttachmentRepository is a mock implementation of
// repository.AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) GetByID(ctx context.Context, id uint) (*models.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByMail(ctx context.Context, mailID uint) ([]models.Attachment, error) {
	args := m.Called(ctx, mailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
