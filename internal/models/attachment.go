package models

// Attachment represents a file attached to a mail. The bytes live in external
// file storage; FilePath is the reference into it.
type Attachment struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	MailID      uint   `gorm:"not null;index" json:"mail_id"`
	FileName    string `gorm:"size:255" json:"file_name"`
	ContentType string `gorm:"size:100" json:"content_type"`
	FilePath    string `gorm:"size:500" json:"-"`
	FileSize    int64  `json:"file_size"`

	// Relationships
	Mail Mail `gorm:"foreignKey:MailID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
