package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexmail/alexmail-backend/internal/models"
	"gorm.io/gorm"
)

// MailRepository defines the interface for mail data access
type MailRepository interface {
	Create(ctx context.Context, mail *models.Mail) error
	CreateWithAttachments(ctx context.Context, mail *models.Mail, attachments []models.Attachment) error
	GetByID(ctx context.Context, id uint) (*models.Mail, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID uint) (*models.Mail, error)
	Update(ctx context.Context, mail *models.Mail) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	DeleteByOwnerAndFolder(ctx context.Context, ownerID uint, folderName string) (int64, error)
	RenameFolder(ctx context.Context, ownerID uint, oldName, newName string) (int64, error)
	ListByOwnerAndFolder(ctx context.Context, ownerID uint, folderName string) ([]models.Mail, error)
	ListByOwnerInboxAndSent(ctx context.Context, ownerID uint) ([]models.Mail, error)
	ListByReceiverAndFolderBySender(ctx context.Context, receiver, folderName string) ([]models.Mail, error)
	ListByReceiver(ctx context.Context, receiver string) ([]models.Mail, error)
	ListTrashDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Mail, error)
}

// mailRepository implements MailRepository using GORM
type mailRepository struct {
	db *gorm.DB
}

// NewMailRepository creates a new MailRepository instance
func NewMailRepository(db *gorm.DB) MailRepository {
	return &mailRepository{db: db}
}

// Create creates a new mail record
func (r *mailRepository) Create(ctx context.Context, mail *models.Mail) error {
	result := r.db.WithContext(ctx).Create(mail)
	if result.Error != nil {
		return fmt.Errorf("failed to create mail: %w", result.Error)
	}
	return nil
}

// CreateWithAttachments creates a mail with its attachments in a transaction
func (r *mailRepository) CreateWithAttachments(ctx context.Context, mail *models.Mail, attachments []models.Attachment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mail).Error; err != nil {
			return fmt.Errorf("failed to create mail: %w", err)
		}

		for i := range attachments {
			attachments[i].MailID = mail.ID
			if err := tx.Create(&attachments[i]).Error; err != nil {
				return fmt.Errorf("failed to create attachment: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves a mail by its ID with preloaded attachments
func (r *mailRepository) GetByID(ctx context.Context, id uint) (*models.Mail, error) {
	var mail models.Mail
	result := r.db.WithContext(ctx).Preload("Attachments").First(&mail, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mail by ID: %w", result.Error)
	}
	return &mail, nil
}

// GetByIDAndOwner retrieves a mail by ID scoped to its owner. Returns
// ErrNotFound when the mail does not exist or belongs to another mailbox.
func (r *mailRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uint) (*models.Mail, error) {
	var mail models.Mail
	result := r.db.WithContext(ctx).Preload("Attachments").
		Where("id = ? AND owner_id = ?", id, ownerID).First(&mail)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mail by ID and owner: %w", result.Error)
	}
	return &mail, nil
}

// Update persists changes to an existing mail record
func (r *mailRepository) Update(ctx context.Context, mail *models.Mail) error {
	result := r.db.WithContext(ctx).Save(mail)
	if result.Error != nil {
		return fmt.Errorf("failed to update mail: %w", result.Error)
	}
	return nil
}

// Delete removes a mail by its ID (cascade deletes attachments)
func (r *mailRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Mail{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete mail: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDs removes the given mail records in bulk and returns how many
// rows were deleted. Zero matches is not an error; a concurrent delete of the
// same ids simply lowers the count.
func (r *mailRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Delete(&models.Mail{}, ids)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to bulk delete mails: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByOwnerAndFolder hard-deletes every mail of the owner in the given
// folder and returns the number of rows removed.
func (r *mailRepository) DeleteByOwnerAndFolder(ctx context.Context, ownerID uint, folderName string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND folder_name = ?", ownerID, folderName).
		Delete(&models.Mail{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete mails in folder: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// RenameFolder rewrites folder_name for every mail of the owner in oldName.
// The single UPDATE keeps the bulk rewrite atomic.
func (r *mailRepository) RenameFolder(ctx context.Context, ownerID uint, oldName, newName string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Mail{}).
		Where("owner_id = ? AND folder_name = ?", ownerID, oldName).
		Update("folder_name", newName)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to rename folder: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListByOwnerAndFolder retrieves the owner's mail in a folder, newest first.
// Folder names match case-sensitively.
func (r *mailRepository) ListByOwnerAndFolder(ctx context.Context, ownerID uint, folderName string) ([]models.Mail, error) {
	var mails []models.Mail
	result := r.db.WithContext(ctx).Preload("Attachments").
		Where("owner_id = ? AND folder_name = ?", ownerID, folderName).
		Order("timestamp DESC").
		Find(&mails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list mails by folder: %w", result.Error)
	}
	return mails, nil
}

// ListByOwnerInboxAndSent retrieves the owner's INBOX and SENT mail only.
// Drafts and trash are excluded by construction; this backs the "all" view.
func (r *mailRepository) ListByOwnerInboxAndSent(ctx context.Context, ownerID uint) ([]models.Mail, error) {
	var mails []models.Mail
	result := r.db.WithContext(ctx).Preload("Attachments").
		Where("owner_id = ? AND folder_name IN ?", ownerID, []string{models.FolderInbox, models.FolderSent}).
		Order("timestamp DESC").
		Find(&mails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list inbox and sent mails: %w", result.Error)
	}
	return mails, nil
}

// ListByReceiverAndFolderBySender retrieves mail addressed to the receiver in
// a folder, ordered by sender ascending. This is the base order the sort
// engine re-orders in memory.
func (r *mailRepository) ListByReceiverAndFolderBySender(ctx context.Context, receiver, folderName string) ([]models.Mail, error) {
	var mails []models.Mail
	result := r.db.WithContext(ctx).Preload("Attachments").
		Where("receiver = ? AND folder_name = ?", receiver, folderName).
		Order("sender ASC").
		Find(&mails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list mails by receiver and folder: %w", result.Error)
	}
	return mails, nil
}

// ListByReceiver retrieves every mail addressed to the receiver regardless of
// folder, in store order.
func (r *mailRepository) ListByReceiver(ctx context.Context, receiver string) ([]models.Mail, error) {
	var mails []models.Mail
	result := r.db.WithContext(ctx).Preload("Attachments").
		Where("receiver = ?", receiver).
		Find(&mails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list mails by receiver: %w", result.Error)
	}
	return mails, nil
}

// ListTrashDeletedBefore retrieves trash mail whose deletion timestamp is
// older than the cutoff, across all users.
func (r *mailRepository) ListTrashDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Mail, error) {
	var mails []models.Mail
	result := r.db.WithContext(ctx).
		Where("folder_name = ? AND deleted_at < ?", models.FolderTrash, cutoff).
		Find(&mails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list expired trash mails: %w", result.Error)
	}
	return mails, nil
}
