package services

import (
	"encoding/base64"
	"log/slog"

	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/storage"
)

// EmailViewBuilder converts mail records into the EmailView response shape,
// inlining full attachment bytes as base64. Inlining on every fetch trades
// bandwidth for a simpler frontend contract.
type EmailViewBuilder struct {
	fileStorage storage.FileStorage
	logger      *slog.Logger
}

// NewEmailViewBuilder creates a new EmailViewBuilder instance
func NewEmailViewBuilder(fileStorage storage.FileStorage, logger *slog.Logger) *EmailViewBuilder {
	return &EmailViewBuilder{
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Build converts a single mail to its view. A failed read of one attachment
// skips that attachment and keeps the rest; the request still succeeds.
func (b *EmailViewBuilder) Build(mail *models.Mail) models.EmailView {
	view := models.EmailView{
		ID:         mail.ID,
		Sender:     mail.Sender,
		Receiver:   mail.Receiver,
		Subject:    mail.Subject,
		Body:       mail.Body,
		Timestamp:  mail.Timestamp,
		Priority:   mail.Priority,
		FolderName: mail.FolderName,
		IsRead:     mail.IsRead,
	}

	for _, att := range mail.Attachments {
		data, err := b.fileStorage.ReadBytes(att.FilePath)
		if err != nil {
			b.logger.Warn("failed to load attachment, skipping",
				slog.Uint64("attachment_id", uint64(att.ID)),
				slog.Uint64("mail_id", uint64(mail.ID)),
				slog.Any("error", err))
			continue
		}

		view.Attachments = append(view.Attachments, models.AttachmentView{
			ID:          att.ID,
			FileName:    att.FileName,
			ContentType: att.ContentType,
			FileSize:    att.FileSize,
			FileData:    base64.StdEncoding.EncodeToString(data),
		})
	}

	return view
}

// BuildList converts a slice of mail records, preserving order.
func (b *EmailViewBuilder) BuildList(mails []models.Mail) []models.EmailView {
	views := make([]models.EmailView, 0, len(mails))
	for i := range mails {
		views = append(views, b.Build(&mails[i]))
	}
	return views
}
