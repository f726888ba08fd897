package models

import (
	"time"
)

// ComposeEmail is the request shape for sending, drafting and updating mail.
type ComposeEmail struct {
	Sender    string   `json:"sender"`
	Receivers []string `json:"receivers"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Priority  int      `json:"priority"`
}

// AttachmentView carries attachment metadata plus the full file content
// base64-encoded. Content is inlined on every fetch for frontend
// compatibility.
type AttachmentView struct {
	ID          uint   `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
	FileData    string `json:"file_data,omitempty"`
}

// EmailView is the query result shape returned by list and detail endpoints.
type EmailView struct {
	ID          uint             `json:"id"`
	Sender      string           `json:"sender"`
	Receiver    string           `json:"receiver"`
	Subject     string           `json:"subject"`
	Body        string           `json:"body"`
	Timestamp   time.Time        `json:"timestamp"`
	Priority    int              `json:"priority"`
	FolderName  string           `json:"folder_name"`
	IsRead      bool             `json:"is_read"`
	Attachments []AttachmentView `json:"attachments,omitempty"`
}
