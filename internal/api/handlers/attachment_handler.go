package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexmail/alexmail-backend/internal/api/response"
	apperrors "github.com/alexmail/alexmail-backend/internal/errors"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// AttachmentHandler serves attachment metadata and raw file downloads. Mail
// views inline attachment bytes as base64; these routes are the streaming
// path for clients that want the file itself.
type AttachmentHandler struct {
	attachmentRepo repository.AttachmentRepository
	mailRepo       repository.MailRepository
	fileStorage    storage.FileStorage
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(
	attachmentRepo repository.AttachmentRepository,
	mailRepo repository.MailRepository,
	fileStorage storage.FileStorage,
) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentRepo: attachmentRepo,
		mailRepo:       mailRepo,
		fileStorage:    fileStorage,
	}
}

// List handles GET /api/mail/:id/attachments
func (h *AttachmentHandler) List(c echo.Context) error {
	mailID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	// A missing mail is a 404; an existing mail with no attachments is an
	// empty list.
	if _, err := h.mailRepo.GetByID(c.Request().Context(), mailID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Error(c, fmt.Errorf("mail %d: %w", mailID, apperrors.ErrMailNotFound))
		}
		return response.Error(c, err)
	}

	attachments, err := h.attachmentRepo.ListByMail(c.Request().Context(), mailID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, attachments)
}

// Download handles GET /api/attachments/:id/download, streaming the stored
// file instead of inlining it.
func (h *AttachmentHandler) Download(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid attachment ID")
	}

	att, err := h.attachmentRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Error(c, fmt.Errorf("attachment %d: %w", id, apperrors.ErrNotFound))
		}
		return response.Error(c, err)
	}

	file, err := h.fileStorage.Get(att.FilePath)
	if err != nil {
		return response.Error(c, fmt.Errorf("failed to open attachment %d: %w", id, err))
	}
	defer file.Close()

	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", att.FileName))
	if att.FileSize > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(att.FileSize, 10))
	}
	return c.Stream(http.StatusOK, contentType, file)
}
