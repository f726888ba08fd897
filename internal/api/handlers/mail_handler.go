package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexmail/alexmail-backend/internal/api/response"
	"github.com/alexmail/alexmail-backend/internal/models"
	"github.com/alexmail/alexmail-backend/internal/services"
	"github.com/alexmail/alexmail-backend/internal/validator"
	"github.com/labstack/echo/v4"
)

// MailHandler handles mail lifecycle HTTP requests
type MailHandler struct {
	mailService services.MailService
	exporter    services.MailExporter
}

// NewMailHandler creates a new MailHandler
func NewMailHandler(mailService services.MailService, exporter services.MailExporter) *MailHandler {
	return &MailHandler{
		mailService: mailService,
		exporter:    exporter,
	}
}

// Send handles POST /api/mail/send
func (h *MailHandler) Send(c echo.Context) error {
	var req models.ComposeEmail
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validator.ValidateCompose(req.Sender, req.Receivers, req.Priority); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.mailService.Send(c.Request().Context(), req); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "mail sent")
}

// SendWithAttachments handles POST /api/mail/send-with-attachments
// (multipart/form-data)
func (h *MailHandler) SendWithAttachments(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "invalid multipart form")
	}

	priority, err := strconv.Atoi(c.FormValue("priority"))
	if err != nil {
		return response.BadRequest(c, "priority must be an integer")
	}

	req := models.ComposeEmail{
		Sender:    c.FormValue("sender"),
		Receivers: form.Value["receivers"],
		Subject:   c.FormValue("subject"),
		Body:      c.FormValue("body"),
		Priority:  priority,
	}
	if err := validator.ValidateCompose(req.Sender, req.Receivers, req.Priority); err != nil {
		return response.BadRequest(c, err.Error())
	}

	files := form.File["attachments"]
	uploads := make([]services.AttachmentUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return response.BadRequest(c, fmt.Sprintf("cannot read attachment '%s'", fh.Filename))
		}
		defer f.Close()

		uploads = append(uploads, services.AttachmentUpload{
			FileName:    validator.SanitizeFilename(fh.Filename),
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}

	if err := h.mailService.SendWithAttachments(c.Request().Context(), req, uploads); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "mail sent")
}

// Draft handles POST /api/mail/draft
func (h *MailHandler) Draft(c echo.Context) error {
	var req models.ComposeEmail
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	id, err := h.mailService.Draft(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]uint{"id": id})
}

// UpdateDraft handles PUT /api/mail/:id/draft
func (h *MailHandler) UpdateDraft(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	var req models.ComposeEmail
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.mailService.UpdateDraft(c.Request().Context(), id, req); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "draft updated")
}

// Get handles GET /api/mail/:id
func (h *MailHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	view, err := h.mailService.GetMailView(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

// MarkRead handles PATCH /api/mail/:id/read
func (h *MailHandler) MarkRead(c echo.Context) error {
	return h.setRead(c, true)
}

// MarkUnread handles PATCH /api/mail/:id/unread
func (h *MailHandler) MarkUnread(c echo.Context) error {
	return h.setRead(c, false)
}

func (h *MailHandler) setRead(c echo.Context, read bool) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	if err := h.mailService.MarkRead(c.Request().Context(), id, read); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "read flag updated")
}

// Trash handles DELETE /api/mail/:id (owner-checked soft delete). The
// owner_id query parameter is required.
func (h *MailHandler) Trash(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	ownerID, err := strconv.ParseUint(c.QueryParam("owner_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "owner_id is required")
	}

	if err := h.mailService.MoveToTrash(c.Request().Context(), id, uint(ownerID)); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "mail moved to trash")
}

// TrashLegacy handles DELETE /api/mail/:id/unchecked, the pre-ownership
// soft delete kept for old clients.
func (h *MailHandler) TrashLegacy(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	if err := h.mailService.MoveToTrashAny(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "mail moved to trash")
}

// Delete handles DELETE /api/mail/:id/permanent (irreversible)
func (h *MailHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	if err := h.mailService.HardDelete(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}

// Copy handles POST /api/folder/copy
func (h *MailHandler) Copy(c echo.Context) error {
	mailID, err := strconv.ParseUint(c.QueryParam("mail_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}
	folderName := c.QueryParam("folder_name")

	if err := h.mailService.CopyToFolder(c.Request().Context(), uint(mailID), folderName); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, fmt.Sprintf("mail copied to folder: %s", folderName))
}

// Export handles GET /api/mail/:id/export, returning the mail as a .eml
// download.
func (h *MailHandler) Export(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid mail ID")
	}

	data, filename, err := h.exporter.ExportEML(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "message/rfc822", data)
}

// parseID extracts the :id path parameter
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
