// Package fixtures provides test data builders for the mail backend models.
package fixtures

import (
	"time"

	"github.com/alexmail/alexmail-backend/internal/models"
)

// UserBuilder creates test User instances with a fluent API
type UserBuilder struct {
	user models.User
}

// NewUserBuilder creates a new UserBuilder with sensible defaults
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		user: models.User{
			ID:           1,
			Email:        "alice@example.com",
			PasswordHash: "not-a-real-hash",
			Folders:      models.FolderList{},
			CreatedAt:    time.Now(),
		},
	}
}

// WithID sets the user ID
func (b *UserBuilder) WithID(id uint) *UserBuilder {
	b.user.ID = id
	return b
}

// WithEmail sets the email address
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithFolders sets the custom folder list
func (b *UserBuilder) WithFolders(folders ...string) *UserBuilder {
	b.user.Folders = models.FolderList(folders)
	return b
}

// Build returns the constructed User
func (b *UserBuilder) Build() *models.User {
	return &b.user
}

// MailBuilder creates test Mail instances with a fluent API
type MailBuilder struct {
	mail models.Mail
}

// NewMailBuilder creates a new MailBuilder with sensible defaults
func NewMailBuilder() *MailBuilder {
	return &MailBuilder{
		mail: models.Mail{
			ID:         1,
			OwnerID:    1,
			Sender:     "alice@example.com",
			Receiver:   "bob@example.com",
			Subject:    "Test Subject",
			Body:       "Test body",
			Priority:   3,
			Timestamp:  time.Now(),
			FolderName: models.FolderInbox,
		},
	}
}

// WithID sets the mail ID
func (b *MailBuilder) WithID(id uint) *MailBuilder {
	b.mail.ID = id
	return b
}

// WithOwner sets the owning user ID
func (b *MailBuilder) WithOwner(ownerID uint) *MailBuilder {
	b.mail.OwnerID = ownerID
	return b
}

// WithSender sets the sender address
func (b *MailBuilder) WithSender(sender string) *MailBuilder {
	b.mail.Sender = sender
	return b
}

// WithReceiver sets the (comma-joined) receiver string
func (b *MailBuilder) WithReceiver(receiver string) *MailBuilder {
	b.mail.Receiver = receiver
	return b
}

// WithSubject sets the subject
func (b *MailBuilder) WithSubject(subject string) *MailBuilder {
	b.mail.Subject = subject
	return b
}

// WithPriority sets the priority
func (b *MailBuilder) WithPriority(priority int) *MailBuilder {
	b.mail.Priority = priority
	return b
}

// WithFolder sets the folder name
func (b *MailBuilder) WithFolder(folder string) *MailBuilder {
	b.mail.FolderName = folder
	return b
}

// WithTimestamp sets the timestamp
func (b *MailBuilder) WithTimestamp(ts time.Time) *MailBuilder {
	b.mail.Timestamp = ts
	return b
}

// InTrash moves the mail to trash with a deletion timestamp
func (b *MailBuilder) InTrash(deletedAt time.Time) *MailBuilder {
	b.mail.FolderName = models.FolderTrash
	b.mail.DeletedAt = &deletedAt
	return b
}

// WithAttachments sets the attachment list
func (b *MailBuilder) WithAttachments(attachments ...models.Attachment) *MailBuilder {
	b.mail.Attachments = attachments
	return b
}

// Build returns the constructed Mail
func (b *MailBuilder) Build() *models.Mail {
	return &b.mail
}

// AttachmentBuilder creates test Attachment instances with a fluent API
type AttachmentBuilder struct {
	attachment models.Attachment
}

// NewAttachmentBuilder creates a new AttachmentBuilder with sensible defaults
func NewAttachmentBuilder() *AttachmentBuilder {
	return &AttachmentBuilder{
		attachment: models.Attachment{
			ID:          1,
			MailID:      1,
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			FilePath:    "ab/ab123456.pdf",
			FileSize:    1024,
		},
	}
}

// WithID sets the attachment ID
func (b *AttachmentBuilder) WithID(id uint) *AttachmentBuilder {
	b.attachment.ID = id
	return b
}

// WithMailID sets the owning mail ID
func (b *AttachmentBuilder) WithMailID(mailID uint) *AttachmentBuilder {
	b.attachment.MailID = mailID
	return b
}

// WithFileName sets the original filename
func (b *AttachmentBuilder) WithFileName(name string) *AttachmentBuilder {
	b.attachment.FileName = name
	return b
}

// WithFilePath sets the stored file path
func (b *AttachmentBuilder) WithFilePath(path string) *AttachmentBuilder {
	b.attachment.FilePath = path
	return b
}

// Build returns the constructed Attachment
func (b *AttachmentBuilder) Build() *models.Attachment {
	return &b.attachment
}
