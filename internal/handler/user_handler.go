package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "filedrop/internal/errors"
	"filedrop/internal/middleware"
	"filedrop/internal/service"
)

// UserHandler handles profile and admin user-management endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateMeRequest whitelists the self-service profile fields. Password fields
// are bound only to reject them explicitly.
type UpdateMeRequest struct {
	Name            string `json:"name" validate:"omitempty"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest is the admin user-update payload.
type UpdateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"omitempty,oneof=user admin"`
	Active *bool  `json:"active"`
}

// UpdateMe godoc
// @Summary Update the logged-in user's name or email
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateMeRequest true "Profile fields"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.AppError
// @Security BearerAuth
// @Router /users/updateMe [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if req.Password != "" || req.PasswordConfirm != "" {
		return apperrors.BadRequest("This route is not for password updates. Please use /updateMyPassword")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	updated, err := h.svc.UpdateMe(c.Request().Context(), user.ID, req.Name, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Envelope{
		Status: "success",
		Data:   echo.Map{"user": updated},
	})
}

// DeleteMe godoc
// @Summary Deactivate the logged-in user
// @Tags users
// @Success 204
// @Security BearerAuth
// @Router /users/deleteMe [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if err := h.svc.DeleteMe(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAllUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{
		Status: "success",
		Data:   echo.Map{"results": len(users), "users": users},
	})
}

// CreateUser godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.AppError
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, err := h.svc.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Envelope{
		Status: "success",
		Data:   echo.Map{"user": user},
	})
}

// GetUser godoc
// @Summary Get a user by id
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.AppError
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadRequest("invalid user id")
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Envelope{
		Status: "success",
		Data:   echo.Map{"user": user},
	})
}

// UpdateUser godoc
// @Summary Update a user by id
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.AppError
// @Security BearerAuth
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadRequest("invalid user id")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	if err := h.svc.UpdateUser(c.Request().Context(), id, fields); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Message: "User updated",
	})
}

// DeleteUser godoc
// @Summary Hard-delete a user by id
// @Tags admin
// @Param id path string true "User ID"
// @Success 204
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadRequest("invalid user id")
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
