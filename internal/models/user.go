package models

import (
	"time"
)

// FolderList is an ordered list of custom folder names. Names are
// case-sensitive and unique within a user.
type FolderList []string

// Contains reports whether the list holds the exact (case-sensitive) name.
func (l FolderList) Contains(name string) bool {
	for _, f := range l {
		if f == name {
			return true
		}
	}
	return false
}

// User represents a registered account. The Folders column is the source of
// truth for which custom folder names exist for the user; mail rows are not
// foreign-key constrained to it.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	Folders      FolderList `gorm:"serializer:json" json:"folders"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Mails []Mail `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
