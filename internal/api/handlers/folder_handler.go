package handlers

import (
	"strconv"

	"github.com/alexmail/alexmail-backend/internal/api/response"
	"github.com/alexmail/alexmail-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FolderHandler handles folder management and mail listing HTTP requests
type FolderHandler struct {
	mailService  services.MailService
	queryService services.MailQueryService
}

// NewFolderHandler creates a new FolderHandler
func NewFolderHandler(mailService services.MailService, queryService services.MailQueryService) *FolderHandler {
	return &FolderHandler{
		mailService:  mailService,
		queryService: queryService,
	}
}

// folderRequest is the request body for create and rename
type folderRequest struct {
	Name    string `json:"name"`
	NewName string `json:"new_name,omitempty"`
}

// List handles GET /api/users/:email/folders
func (h *FolderHandler) List(c echo.Context) error {
	folders, err := h.mailService.ListFolders(c.Request().Context(), c.Param("email"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, folders)
}

// Create handles POST /api/users/:email/folders
func (h *FolderHandler) Create(c echo.Context) error {
	var req folderRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "folder name is required")
	}

	if err := h.mailService.CreateFolder(c.Request().Context(), c.Param("email"), req.Name); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, nil)
}

// Delete handles DELETE /api/users/:email/folders/:name. Removing the name
// also hard-deletes every mail the user has in that folder.
func (h *FolderHandler) Delete(c echo.Context) error {
	if err := h.mailService.DeleteFolder(c.Request().Context(), c.Param("email"), c.Param("name")); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}

// Rename handles PUT /api/users/:email/folders/:name
func (h *FolderHandler) Rename(c echo.Context) error {
	var req folderRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.NewName == "" {
		return response.BadRequest(c, "new folder name is required")
	}

	if err := h.mailService.RenameFolder(c.Request().Context(), c.Param("email"), c.Param("name"), req.NewName); err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, nil, "folder renamed")
}

// ListMail handles GET /api/users/:email/mail?folder=NAME. The folder "all"
// returns INBOX and SENT only.
func (h *FolderHandler) ListMail(c echo.Context) error {
	folder := c.QueryParam("folder")
	if folder == "" {
		return response.BadRequest(c, "folder query parameter is required")
	}

	views, err := h.queryService.ListByFolder(c.Request().Context(), c.Param("email"), folder)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, views)
}

// SortedInbox handles GET /api/users/:email/inbox/sorted
func (h *FolderHandler) SortedInbox(c echo.Context) error {
	criterion := c.QueryParam("criterion")

	ascending := true
	if raw := c.QueryParam("ascending"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "ascending must be a boolean")
		}
		ascending = parsed
	}

	views, err := h.queryService.SortInbox(c.Request().Context(), c.Param("email"), criterion, ascending)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, views)
}
