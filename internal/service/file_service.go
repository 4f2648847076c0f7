package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "filedrop/internal/errors"
	"filedrop/internal/model"
	"filedrop/internal/repository"
	"filedrop/internal/storage"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
	".txt":  true,
}

// FileService uploads user files to object storage and tracks their links.
type FileService interface {
	Upload(ctx context.Context, user *model.User, filename, contentType string, data []byte) (*model.FileLink, error)
	Links(ctx context.Context, userID uuid.UUID) ([]model.FileLink, error)
}

type fileService struct {
	repo     repository.UserRepository
	uploader storage.Uploader
}

// NewFileService builds a FileService with repository and uploader.
func NewFileService(repo repository.UserRepository, uploader storage.Uploader) FileService {
	return &fileService{repo: repo, uploader: uploader}
}

// Upload stores the file in the bucket and appends a link to the user's
// uploads.
func (s *fileService) Upload(ctx context.Context, user *model.User, filename, contentType string, data []byte) (*model.FileLink, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, apperrors.BadRequest("Invalid file extension")
	}

	key := fmt.Sprintf("users/%s/%d-%s", user.ID, time.Now().Unix(), filepath.Base(filename))
	downloadURL, err := s.uploader.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, apperrors.New(500,
			"Error occurred while uploading the file. Please try again later", "UPLOAD_FAILED")
	}

	link := &model.FileLink{
		UserID:      user.ID,
		Name:        filename,
		DownloadURL: downloadURL,
	}
	if err := s.repo.AppendLink(ctx, link); err != nil {
		return nil, fmt.Errorf("save file link: %w", err)
	}

	return link, nil
}

// Links returns the user's uploaded-file links.
func (s *fileService) Links(ctx context.Context, userID uuid.UUID) ([]model.FileLink, error) {
	return s.repo.ListLinks(ctx, userID)
}
