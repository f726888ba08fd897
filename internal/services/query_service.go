package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	apperrors "github.com/alexmail/alexmail-backend/internal/errors"
	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/internal/storage"
)

// Sort criteria accepted by SortInbox. Anything else falls back to an
// unordered, unscoped listing.
const (
	SortBySender   = "sender"
	SortBySubject  = "subject"
	SortByDate     = "date"
	SortByPriority = "priority"
)

// MailQueryService is the folder-scoped retrieval and sorting side of the
// mailbox.
type MailQueryService interface {
	ListByFolder(ctx context.Context, ownerEmail, folderName string) ([]models.EmailView, error)
	SortInbox(ctx context.Context, receiverEmail, criterion string, ascending bool) ([]models.EmailView, error)
}

// mailQueryService implements MailQueryService
type mailQueryService struct {
	mailRepo repository.MailRepository
	userRepo repository.UserRepository
	views    *EmailViewBuilder
}

// NewMailQueryService creates a new MailQueryService instance
func NewMailQueryService(
	mailRepo repository.MailRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	logger *slog.Logger,
) MailQueryService {
	return &mailQueryService{
		mailRepo: mailRepo,
		userRepo: userRepo,
		views:    NewEmailViewBuilder(fileStorage, logger),
	}
}

// ListByFolder returns the owner's mail in a folder, newest first. The
// pseudo-folder "all" (any casing) unions INBOX and SENT only; drafts and
// trash are excluded on purpose.
func (s *mailQueryService) ListByFolder(ctx context.Context, ownerEmail, folderName string) ([]models.EmailView, error) {
	owner, err := s.userRepo.GetByEmail(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user '%s': %w", ownerEmail, apperrors.ErrUserNotFound)
		}
		return nil, err
	}

	var mails []models.Mail
	if strings.EqualFold(folderName, "all") {
		mails, err = s.mailRepo.ListByOwnerInboxAndSent(ctx, owner.ID)
	} else {
		mails, err = s.mailRepo.ListByOwnerAndFolder(ctx, owner.ID, folderName)
	}
	if err != nil {
		return nil, err
	}

	return s.views.BuildList(mails), nil
}

// SortInbox loads the receiver's INBOX (base order: sender ascending) and
// re-orders it in memory by the chosen criterion. The sort is stable; ties
// keep the base order.
//
// Direction convention: ascending=true means conventional ascending order for
// sender, subject and date, but highest-priority-first for priority. The
// inversion is deliberate product behavior ("priority mode" surfaces urgent
// mail) and is kept as-is.
func (s *mailQueryService) SortInbox(ctx context.Context, receiverEmail, criterion string, ascending bool) ([]models.EmailView, error) {
	var less func(a, b *models.Mail) bool

	switch criterion {
	case SortBySender:
		less = func(a, b *models.Mail) bool {
			return strings.ToLower(a.Sender) < strings.ToLower(b.Sender)
		}
	case SortBySubject:
		less = func(a, b *models.Mail) bool {
			return strings.ToLower(a.Subject) < strings.ToLower(b.Subject)
		}
	case SortByDate:
		less = func(a, b *models.Mail) bool {
			return a.Timestamp.Before(b.Timestamp)
		}
	case SortByPriority:
		// Inverted: ascending selects descending numeric priority.
		less = func(a, b *models.Mail) bool {
			return a.Priority > b.Priority
		}
	default:
		// Unknown criterion: full unordered listing, folder scoping ignored.
		mails, err := s.mailRepo.ListByReceiver(ctx, receiverEmail)
		if err != nil {
			return nil, err
		}
		return s.views.BuildList(mails), nil
	}

	mails, err := s.mailRepo.ListByReceiverAndFolderBySender(ctx, receiverEmail, models.FolderInbox)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(mails, func(i, j int) bool {
		if ascending {
			return less(&mails[i], &mails[j])
		}
		return less(&mails[j], &mails[i])
	})

	return s.views.BuildList(mails), nil
}
