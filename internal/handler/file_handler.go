package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "filedrop/internal/errors"
	"filedrop/internal/middleware"
	"filedrop/internal/service"
)

// FileHandler handles file upload and link listing endpoints.
type FileHandler struct {
	svc service.FileService
}

// NewFileHandler creates a file handler.
func NewFileHandler(svc service.FileService) *FileHandler {
	return &FileHandler{svc: svc}
}

// UploadFile godoc
// @Summary Upload a file to the storage bucket
// @Tags files
// @Accept mpfd
// @Produce json
// @Param filename formData file true "File to upload (jpg, jpeg, png, gif, pdf or txt, max 1MB)"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.AppError
// @Security BearerAuth
// @Router /users/uploadFile [post]
func (h *FileHandler) UploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("filename")
	if err != nil {
		return apperrors.BadRequest("Please attach a file in the 'filename' field")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperrors.BadRequest("could not read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return apperrors.BadRequest("could not read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	user := middleware.CurrentUser(c)
	link, err := h.svc.Upload(c.Request().Context(), user, fileHeader.Filename, contentType, data)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Message: "file uploaded to storage bucket",
		Data: echo.Map{
			"name":        link.Name,
			"type":        contentType,
			"downloadURL": link.DownloadURL,
		},
	})
}

// GetMyLinks godoc
// @Summary List the logged-in user's uploaded-file links
// @Tags files
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /users/getMyLinks [get]
func (h *FileHandler) GetMyLinks(c echo.Context) error {
	user := middleware.CurrentUser(c)
	links, err := h.svc.Links(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Message: "Links found",
		Data:    echo.Map{"links": links},
	})
}
