package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileLink records one uploaded file: its display name and retrieval URL.
type FileLink struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	DownloadURL string    `json:"downloadURL" gorm:"size:1024;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *FileLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
