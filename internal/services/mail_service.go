package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/alexmail/alexmail-backend/internal/errors"
	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/internal/storage"
)

// AttachmentUpload carries one uploaded attachment into the send path.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// MailService owns all mail-state transitions: send, draft, copy, trash,
// purge and the per-user custom folder list.
type MailService interface {
	Send(ctx context.Context, dto models.ComposeEmail) error
	SendWithAttachments(ctx context.Context, dto models.ComposeEmail, uploads []AttachmentUpload) error
	Draft(ctx context.Context, dto models.ComposeEmail) (uint, error)
	UpdateDraft(ctx context.Context, id uint, dto models.ComposeEmail) error
	MarkRead(ctx context.Context, id uint, read bool) error
	GetMailView(ctx context.Context, id uint) (*models.EmailView, error)

	// MoveToTrash soft-deletes a mail after verifying ownership.
	MoveToTrash(ctx context.Context, id, ownerID uint) error
	// MoveToTrashAny soft-deletes without an ownership check. Kept for
	// callers that predate owner-scoped deletion; prefer MoveToTrash.
	MoveToTrashAny(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	CopyToFolder(ctx context.Context, id uint, folderName string) error
	PurgeExpiredTrash(ctx context.Context, retention time.Duration) (int, error)

	ListFolders(ctx context.Context, userEmail string) ([]string, error)
	CreateFolder(ctx context.Context, userEmail, name string) error
	DeleteFolder(ctx context.Context, userEmail, name string) error
	RenameFolder(ctx context.Context, userEmail, oldName, newName string) error
}

// mailService implements MailService
type mailService struct {
	mailRepo    repository.MailRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	views       *EmailViewBuilder
	logger      *slog.Logger
}

// NewMailService creates a new MailService instance
func NewMailService(
	mailRepo repository.MailRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	logger *slog.Logger,
) MailService {
	return &mailService{
		mailRepo:    mailRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		views:       NewEmailViewBuilder(fileStorage, logger),
		logger:      logger,
	}
}

// Send persists the sender's SENT copy and mirrors an INBOX copy into every
// receiver that has a local account. Unknown receivers are skipped.
func (s *mailService) Send(ctx context.Context, dto models.ComposeEmail) error {
	return s.send(ctx, dto, nil)
}

// SendWithAttachments is Send plus attachment uploads. Each upload is
// validated, written to file storage once, and linked to every created mail
// copy through its own attachment row.
func (s *mailService) SendWithAttachments(ctx context.Context, dto models.ComposeEmail, uploads []AttachmentUpload) error {
	attachments := make([]models.Attachment, 0, len(uploads))
	for _, up := range uploads {
		if err := storage.ValidateFile(up.FileName, up.Size); err != nil {
			return fmt.Errorf("attachment '%s' rejected: %w", up.FileName, apperrors.ErrInvalidInput)
		}
		path, err := s.fileStorage.Save(up.FileName, up.Content)
		if err != nil {
			return fmt.Errorf("failed to store attachment '%s': %w", up.FileName, err)
		}
		attachments = append(attachments, models.Attachment{
			FileName:    up.FileName,
			ContentType: up.ContentType,
			FilePath:    path,
			FileSize:    up.Size,
		})
	}
	return s.send(ctx, dto, attachments)
}

func (s *mailService) send(ctx context.Context, dto models.ComposeEmail, attachments []models.Attachment) error {
	sender, err := s.userRepo.GetByEmail(ctx, dto.Sender)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("sender '%s': %w", dto.Sender, apperrors.ErrUserNotFound)
		}
		return err
	}

	now := time.Now()
	receiver := strings.Join(dto.Receivers, ", ")

	sentCopy := models.Mail{
		OwnerID:    sender.ID,
		Sender:     dto.Sender,
		Receiver:   receiver,
		Subject:    dto.Subject,
		Body:       dto.Body,
		Priority:   dto.Priority,
		Timestamp:  now,
		FolderName: models.FolderSent,
		IsRead:     true,
	}
	if err := s.mailRepo.CreateWithAttachments(ctx, &sentCopy, cloneAttachments(attachments)); err != nil {
		return err
	}

	// Mirror into each local receiver's INBOX. Receivers without an account
	// here have no mailbox to deliver to.
	for _, addr := range dto.Receivers {
		recipient, err := s.userRepo.GetByEmail(ctx, addr)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Debug("receiver has no local account, skipping delivery",
					slog.String("receiver", addr))
				continue
			}
			return err
		}

		inboxCopy := models.Mail{
			OwnerID:    recipient.ID,
			Sender:     dto.Sender,
			Receiver:   receiver,
			Subject:    dto.Subject,
			Body:       dto.Body,
			Priority:   dto.Priority,
			Timestamp:  now,
			FolderName: models.FolderInbox,
			IsRead:     false,
		}
		if err := s.mailRepo.CreateWithAttachments(ctx, &inboxCopy, cloneAttachments(attachments)); err != nil {
			return err
		}
	}

	s.logger.Info("mail sent",
		slog.Uint64("mail_id", uint64(sentCopy.ID)),
		slog.String("sender", dto.Sender),
		slog.Int("receivers", len(dto.Receivers)),
		slog.Int("attachments", len(attachments)))
	return nil
}

// cloneAttachments returns fresh attachment rows pointing at the same stored
// files, so each mail copy owns its own list.
func cloneAttachments(attachments []models.Attachment) []models.Attachment {
	if len(attachments) == 0 {
		return nil
	}
	clones := make([]models.Attachment, len(attachments))
	for i, att := range attachments {
		clones[i] = models.Attachment{
			FileName:    att.FileName,
			ContentType: att.ContentType,
			FilePath:    att.FilePath,
			FileSize:    att.FileSize,
		}
	}
	return clones
}

// Draft persists a new draft owned by the sender and returns its id. Drafts
// start read.
func (s *mailService) Draft(ctx context.Context, dto models.ComposeEmail) (uint, error) {
	sender, err := s.userRepo.GetByEmail(ctx, dto.Sender)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("sender '%s': %w", dto.Sender, apperrors.ErrUserNotFound)
		}
		return 0, err
	}

	draft := models.Mail{
		OwnerID:    sender.ID,
		Sender:     dto.Sender,
		Receiver:   strings.Join(dto.Receivers, ", "),
		Subject:    dto.Subject,
		Body:       dto.Body,
		Priority:   dto.Priority,
		Timestamp:  time.Now(),
		FolderName: models.FolderDrafts,
		IsRead:     true,
	}
	if err := s.mailRepo.Create(ctx, &draft); err != nil {
		return 0, err
	}
	return draft.ID, nil
}

// UpdateDraft overwrites an existing draft's content in place. The target
// must still be in DRAFTS (compared case-insensitively).
func (s *mailService) UpdateDraft(ctx context.Context, id uint, dto models.ComposeEmail) error {
	draft, err := s.getMail(ctx, id)
	if err != nil {
		return err
	}

	if !strings.EqualFold(draft.FolderName, models.FolderDrafts) {
		return fmt.Errorf("mail %d is in folder '%s': %w", id, draft.FolderName, apperrors.ErrNotDraft)
	}

	draft.Receiver = strings.Join(dto.Receivers, ", ")
	draft.Subject = dto.Subject
	draft.Body = dto.Body
	draft.Priority = dto.Priority
	draft.Timestamp = time.Now()

	return s.mailRepo.Update(ctx, draft)
}

// MarkRead sets the read flag. Idempotent.
func (s *mailService) MarkRead(ctx context.Context, id uint, read bool) error {
	mail, err := s.getMail(ctx, id)
	if err != nil {
		return err
	}
	mail.IsRead = read
	return s.mailRepo.Update(ctx, mail)
}

// GetMailView returns a single mail with attachment bytes inlined.
func (s *mailService) GetMailView(ctx context.Context, id uint) (*models.EmailView, error) {
	mail, err := s.getMail(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.views.Build(mail)
	return &view, nil
}

// MoveToTrash soft-deletes: the mail moves to trash and gets a deletion
// timestamp. Fails with not-found when the id does not belong to ownerID.
func (s *mailService) MoveToTrash(ctx context.Context, id, ownerID uint) error {
	mail, err := s.mailRepo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("mail %d for owner %d: %w", id, ownerID, apperrors.ErrMailNotFound)
		}
		return err
	}
	return s.trash(ctx, mail)
}

// MoveToTrashAny soft-deletes without verifying ownership.
func (s *mailService) MoveToTrashAny(ctx context.Context, id uint) error {
	mail, err := s.getMail(ctx, id)
	if err != nil {
		return err
	}
	return s.trash(ctx, mail)
}

func (s *mailService) trash(ctx context.Context, mail *models.Mail) error {
	now := time.Now()
	mail.FolderName = models.FolderTrash
	mail.DeletedAt = &now
	return s.mailRepo.Update(ctx, mail)
}

// HardDelete permanently removes a mail. Irreversible.
func (s *mailService) HardDelete(ctx context.Context, id uint) error {
	if err := s.mailRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("mail %d: %w", id, apperrors.ErrMailNotFound)
		}
		return err
	}
	return nil
}

// CopyToFolder duplicates a mail into the target folder under a fresh id.
// The target name is stored upper-cased; attachment rows are copied by value
// so the two mails never share a list.
func (s *mailService) CopyToFolder(ctx context.Context, id uint, folderName string) error {
	if strings.TrimSpace(folderName) == "" {
		return fmt.Errorf("folder name cannot be empty: %w", apperrors.ErrInvalidInput)
	}

	source, err := s.getMail(ctx, id)
	if err != nil {
		return err
	}

	copied := models.Mail{
		OwnerID:    source.OwnerID,
		Sender:     source.Sender,
		Receiver:   source.Receiver,
		Subject:    source.Subject,
		Body:       source.Body,
		Priority:   source.Priority,
		Timestamp:  time.Now(),
		FolderName: strings.ToUpper(folderName),
		IsRead:     source.IsRead,
	}

	return s.mailRepo.CreateWithAttachments(ctx, &copied, cloneAttachments(source.Attachments))
}

// PurgeExpiredTrash hard-deletes every trash mail whose deletion timestamp is
// older than the retention window, returning the count removed. Safe to call
// concurrently with itself and with foreground deletes: ids already gone
// simply reduce the count.
func (s *mailService) PurgeExpiredTrash(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := time.Now().Add(-retention)
	expired, err := s.mailRepo.ListTrashDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(expired))
	for i, mail := range expired {
		ids[i] = mail.ID
	}

	deleted, err := s.mailRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	s.logger.Info("purged expired trash",
		slog.Int64("count", deleted),
		slog.Time("cutoff", cutoff))
	return int(deleted), nil
}

// ListFolders returns a copy of the user's custom folder list.
func (s *mailService) ListFolders(ctx context.Context, userEmail string) ([]string, error) {
	user, err := s.getUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	folders := make([]string, len(user.Folders))
	copy(folders, user.Folders)
	return folders, nil
}

// CreateFolder appends a new custom folder name. Names are case-sensitive
// and must be unique within the user.
func (s *mailService) CreateFolder(ctx context.Context, userEmail, name string) error {
	user, err := s.getUser(ctx, userEmail)
	if err != nil {
		return err
	}

	if user.Folders.Contains(name) {
		return fmt.Errorf("folder '%s': %w", name, apperrors.ErrAlreadyExists)
	}

	user.Folders = append(user.Folders, name)
	return s.userRepo.Update(ctx, user)
}

// DeleteFolder removes the name from the user's list (no error if absent)
// and hard-deletes every mail the user has in that folder.
func (s *mailService) DeleteFolder(ctx context.Context, userEmail, name string) error {
	user, err := s.getUser(ctx, userEmail)
	if err != nil {
		return err
	}

	if user.Folders.Contains(name) {
		kept := make(models.FolderList, 0, len(user.Folders)-1)
		for _, f := range user.Folders {
			if f != name {
				kept = append(kept, f)
			}
		}
		user.Folders = kept
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
	}

	deleted, err := s.mailRepo.DeleteByOwnerAndFolder(ctx, user.ID, name)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("deleted folder contents",
			slog.String("user", userEmail),
			slog.String("folder", name),
			slog.Int64("count", deleted))
	}
	return nil
}

// RenameFolder swaps the name in the user's list and rewrites the folder on
// every contained mail.
func (s *mailService) RenameFolder(ctx context.Context, userEmail, oldName, newName string) error {
	user, err := s.getUser(ctx, userEmail)
	if err != nil {
		return err
	}

	if !user.Folders.Contains(oldName) {
		return fmt.Errorf("folder '%s': %w", oldName, apperrors.ErrFolderNotFound)
	}
	if user.Folders.Contains(newName) {
		return fmt.Errorf("folder '%s': %w", newName, apperrors.ErrAlreadyExists)
	}

	for i, f := range user.Folders {
		if f == oldName {
			user.Folders[i] = newName
			break
		}
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	_, err = s.mailRepo.RenameFolder(ctx, user.ID, oldName, newName)
	return err
}

func (s *mailService) getMail(ctx context.Context, id uint) (*models.Mail, error) {
	mail, err := s.mailRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("mail %d: %w", id, apperrors.ErrMailNotFound)
		}
		return nil, err
	}
	return mail, nil
}

func (s *mailService) getUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user '%s': %w", email, apperrors.ErrUserNotFound)
		}
		return nil, err
	}
	return user, nil
}
