package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/alexmail/alexmail-backend/internal/errors"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/internal/storage"
	"github.com/jhillyerd/enmime"
)

// MailExporter renders a stored mail with its attachments to an RFC 5322
// message for .eml download.
type MailExporter interface {
	ExportEML(ctx context.Context, id uint) ([]byte, string, error)
}

// mailExporter implements MailExporter
type mailExporter struct {
	mailRepo    repository.MailRepository
	fileStorage storage.FileStorage
	logger      *slog.Logger
}

// NewMailExporter creates a new MailExporter instance
func NewMailExporter(mailRepo repository.MailRepository, fileStorage storage.FileStorage, logger *slog.Logger) MailExporter {
	return &mailExporter{
		mailRepo:    mailRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// ExportEML returns the encoded message bytes and a suggested filename. As
// with list views, an unreadable attachment is skipped rather than failing
// the export.
func (e *mailExporter) ExportEML(ctx context.Context, id uint) ([]byte, string, error) {
	mail, err := e.mailRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", fmt.Errorf("mail %d: %w", id, apperrors.ErrMailNotFound)
		}
		return nil, "", err
	}

	builder := enmime.Builder().
		From("", mail.Sender).
		Subject(mail.Subject).
		Date(mail.Timestamp).
		Text([]byte(mail.Body))

	for _, addr := range strings.Split(mail.Receiver, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			builder = builder.To("", addr)
		}
	}

	for _, att := range mail.Attachments {
		data, err := e.fileStorage.ReadBytes(att.FilePath)
		if err != nil {
			e.logger.Warn("failed to read attachment for export, skipping",
				slog.Uint64("attachment_id", uint64(att.ID)),
				slog.Any("error", err))
			continue
		}
		builder = builder.AddAttachment(data, att.ContentType, att.FileName)
	}

	part, err := builder.Build()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build message: %w", err)
	}

	var buf bytes.Buffer
	if err := part.Encode(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to encode message: %w", err)
	}

	filename := fmt.Sprintf("mail-%d.eml", mail.ID)
	return buf.Bytes(), filename, nil
}
