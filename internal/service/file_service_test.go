package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "filedrop/internal/errors"
	"filedrop/internal/model"
)

func TestFileService_Upload(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "Test User"}

	t.Run("rejects disallowed extension", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockUploader := new(MockUploader)

		service := NewFileService(mockRepo, mockUploader)
		link, err := service.Upload(context.Background(), user, "malware.exe", "application/octet-stream", []byte("x"))

		assert.Nil(t, link)
		assert.Equal(t, apperrors.BadRequest("Invalid file extension"), err)
		mockUploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uploads and records the link", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("AppendLink", mock.Anything, mock.AnythingOfType("*model.FileLink")).Return(nil)

		mockUploader := new(MockUploader)
		mockUploader.On("Upload", mock.Anything,
			mock.MatchedBy(func(key string) bool {
				return strings.HasPrefix(key, "users/"+user.ID.String()+"/") &&
					strings.HasSuffix(key, "-photo.png")
			}),
			[]byte("image-bytes"), "image/png").
			Return("http://localhost:9000/filedrop/users/x/photo.png", nil)

		service := NewFileService(mockRepo, mockUploader)
		link, err := service.Upload(context.Background(), user, "photo.png", "image/png", []byte("image-bytes"))

		assert.NoError(t, err)
		assert.Equal(t, "photo.png", link.Name)
		assert.Equal(t, "http://localhost:9000/filedrop/users/x/photo.png", link.DownloadURL)
		assert.Equal(t, user.ID, link.UserID)

		mockRepo.AssertExpectations(t)
		mockUploader.AssertExpectations(t)
	})

	t.Run("upload failure is reported without saving a link", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockUploader := new(MockUploader)
		mockUploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", assert.AnError)

		service := NewFileService(mockRepo, mockUploader)
		link, err := service.Upload(context.Background(), user, "notes.txt", "text/plain", []byte("x"))

		assert.Nil(t, link)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "AppendLink", mock.Anything, mock.Anything)
	})
}

func TestFileService_Links(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockRepo.On("ListLinks", mock.Anything, userID).Return([]model.FileLink{
		{Name: "a.txt", DownloadURL: "http://example.com/a.txt"},
		{Name: "b.png", DownloadURL: "http://example.com/b.png"},
	}, nil)

	service := NewFileService(mockRepo, new(MockUploader))
	links, err := service.Links(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, links, 2)
}
