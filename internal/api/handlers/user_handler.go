package handlers

import (
	"github.com/alexmail/alexmail-backend/internal/api/response"
	"github.com/alexmail/alexmail-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles registration and login HTTP requests
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// credentialsRequest is the request body for register and login
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public view of an account
type userResponse struct {
	ID      uint     `json:"id"`
	Email   string   `json:"email"`
	Folders []string `json:"folders"`
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	user, err := h.userService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, userResponse{
		ID:      user.ID,
		Email:   user.Email,
		Folders: user.Folders,
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	user, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, userResponse{
		ID:      user.ID,
		Email:   user.Email,
		Folders: user.Folders,
	})
}
