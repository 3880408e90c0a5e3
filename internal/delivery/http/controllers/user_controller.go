package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

type UserController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewUserController(logger *slog.Logger, svc domain.AuthService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// ListUsersResponse is the data payload for GET /users.
type ListUsersResponse struct {
	Users      []*domain.User         `json:"users"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// List godoc
// @Summary List users
// @Description Lists registered users, newest first. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains users and pagination"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Router /users [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	users, err := c.Service.ListUsers(r.Context(), p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListUsersResponse{
		Users:      users,
		Pagination: helpers.NewPaginationMeta(p, len(users)),
	})
}

// Delete godoc
// @Summary Delete a user
// @Description Deletes a user account. Admin only; admins cannot delete themselves.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /users/{userID} [delete]
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if userID == claims.UserID {
		helpers.WriteJSONError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}
	if err := c.Service.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "User deleted successfully", nil)
}
