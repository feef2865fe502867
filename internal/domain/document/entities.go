package document

import (
	"time"

	"gorm.io/gorm"
)

// Document is an uploaded file visible to one investor, or to everyone
// when UserID is nil.
type Document struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"id"`
	UserID     *uint64        `gorm:"column:user_id;index:idx_documents_user" json:"user_id,omitempty"`
	Title      string         `gorm:"size:255" json:"title"`
	FilePath   string         `gorm:"type:text;column:file_path" json:"-"`
	UploadedAt time.Time      `gorm:"autoCreateTime;column:uploaded_at" json:"uploaded_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Document) TableName() string { return "documents" }
