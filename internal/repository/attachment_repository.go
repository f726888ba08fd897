package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/storage"
	"gorm.io/gorm"
)

// AttachmentRepository is the attachment-level data access used by the
// attachment API routes. Mail creation persists attachments in bulk through
// MailRepository.CreateWithAttachments; this repository covers the per-file
// operations.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id uint) (*models.Attachment, error)
	ListByMail(ctx context.Context, mailID uint) ([]models.Attachment, error)
	Delete(ctx context.Context, id uint) error
}

// attachmentRepository implements AttachmentRepository using GORM
type attachmentRepository struct {
	db          *gorm.DB
	fileStorage storage.FileStorage
}

// NewAttachmentRepository creates a new AttachmentRepository instance
func NewAttachmentRepository(db *gorm.DB, fileStorage storage.FileStorage) AttachmentRepository {
	return &attachmentRepository{
		db:          db,
		fileStorage: fileStorage,
	}
}

// Create creates a new attachment record
func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	result := r.db.WithContext(ctx).Create(attachment)
	if result.Error != nil {
		return fmt.Errorf("failed to create attachment: %w", result.Error)
	}
	return nil
}

// GetByID retrieves an attachment by its ID
func (r *attachmentRepository) GetByID(ctx context.Context, id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	result := r.db.WithContext(ctx).First(&attachment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attachment by ID: %w", result.Error)
	}
	return &attachment, nil
}

// ListByMail retrieves all attachments for a mail, oldest first
func (r *attachmentRepository) ListByMail(ctx context.Context, mailID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	result := r.db.WithContext(ctx).
		Where("mail_id = ?", mailID).
		Order("id ASC").
		Find(&attachments)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", result.Error)
	}
	return attachments, nil
}

// Delete deletes an attachment record and removes the stored file. The file
// removal is best-effort; other mail copies sharing the path keep working
// through their own records.
func (r *attachmentRepository) Delete(ctx context.Context, id uint) error {
	attachment, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&models.Attachment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete attachment: %w", result.Error)
	}

	if attachment.FilePath != "" && r.fileStorage != nil {
		_ = r.fileStorage.Delete(attachment.FilePath)
	}

	return nil
}
