package models

import (
	"time"
)

// Canonical folder names. System folders are stored upper-case except trash,
// which is lower-case. Store queries match case-sensitively, so this casing
// must not change.
const (
	FolderInbox  = "INBOX"
	FolderSent   = "SENT"
	FolderDrafts = "DRAFTS"
	FolderTrash  = "trash"
)

// Mail represents a single mail record in a user's mailbox. Each record
// belongs to exactly one owner; a sent message produces one record in the
// sender's SENT folder and one in each local receiver's INBOX.
type Mail struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	OwnerID    uint       `gorm:"not null;index" json:"owner_id"`
	Sender     string     `gorm:"not null;size:255" json:"sender"`
	Receiver   string     `gorm:"size:1024" json:"receiver"`
	Subject    string     `json:"subject,omitempty"`
	Body       string     `json:"body,omitempty"`
	Priority   int        `gorm:"default:1" json:"priority"`
	Timestamp  time.Time  `gorm:"not null;index" json:"timestamp"`
	FolderName string     `gorm:"not null;size:255;index" json:"folder_name"`
	IsRead     bool       `gorm:"default:false" json:"is_read"`
	// DeletedAt is set when the mail is moved to trash. It is not cleared if
	// the mail later leaves trash (copy/rename), matching the legacy behavior.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Relationships
	Owner       User         `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Attachments []Attachment `gorm:"foreignKey:MailID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// TableName returns the table name for Mail
func (Mail) TableName() string {
	return "mails"
}

// InTrash reports whether the mail currently sits in the trash folder.
func (m *Mail) InTrash() bool {
	return m.FolderName == FolderTrash
}
