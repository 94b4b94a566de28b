package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment the URL is never stored, it is derived from StoragePath at read time
type Attachment struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"not null"`
	StoragePath string    `gorm:"not null;uniqueIndex"`
	Size        int64
	MimeType    string
	UploadedBy  uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

func (Attachment) TableName() string {
	return "attachments"
}
