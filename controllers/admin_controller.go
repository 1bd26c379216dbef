package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventnow/eventnow_backend/middleware"
	"github.com/eventnow/eventnow_backend/models"
	"github.com/eventnow/eventnow_backend/services"
)

// AdminController exposes login/logout/session plus the request console.
// The console endpoints sit behind middleware.AdminAuth; login, logout
// and session operate on whatever token is presented.
type AdminController struct {
	guard   *services.SessionGuard
	console *services.AdminConsoleService
}

func NewAdminController(guard *services.SessionGuard, console *services.AdminConsoleService) *AdminController {
	return &AdminController{guard: guard, console: console}
}

// Login handles POST /api/admin/login. A wrong email and a wrong
// password produce the same answer; a valid identity without a directory
// entry gets a distinct access-denied response and is signed out.
func (ac *AdminController) Login(c echo.Context) error {
	var loginReq models.LoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	token, sess, err := ac.guard.Login(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		case errors.Is(err, models.ErrAccessDenied):
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied. This account is not an administrator.",
			})
		case errors.Is(err, models.ErrUnavailable):
			return c.JSON(http.StatusServiceUnavailable, models.Response{
				Status:  http.StatusServiceUnavailable,
				Message: "Authentication service unavailable. Please try again later.",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Login failed",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"user": map[string]interface{}{
				"userId": sess.UserID,
				"email":  sess.Email,
			},
		},
	})
}

// Logout handles POST /api/admin/logout: the presented token goes on the
// revocation list for its remaining lifetime.
func (ac *AdminController) Logout(c echo.Context) error {
	token := middleware.ExtractBearerToken(c.Request().Header.Get("Authorization"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := ac.guard.Logout(ctx, token); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Logout failed",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}

// Session handles GET /api/admin/session. It re-evaluates the presented
// token against the directory, so a revoked admin learns about it here
// rather than on a failing console call.
func (ac *AdminController) Session(c echo.Context) error {
	token := middleware.ExtractBearerToken(c.Request().Header.Get("Authorization"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	state := ac.guard.CurrentAccess(ctx, token)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Session state",
		Data:    state,
	})
}

// GetRequests handles GET /api/admin/requests?search=&status=. The full
// collection is fetched newest-first; search and status narrow the
// returned list while the stats always reflect the whole store.
func (ac *AdminController) GetRequests(c echo.Context) error {
	statusFilter := c.QueryParam("status")
	if statusFilter == "" {
		statusFilter = "all"
	}
	if statusFilter != "all" && !models.IsValidStatus(statusFilter) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown status filter",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	all, err := ac.console.ListAll(ctx)
	if err != nil {
		return backendErrorResponse(c, err, "Failed to load requests")
	}

	filtered := services.FilterRequests(all, c.QueryParam("search"), statusFilter)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Requests retrieved successfully",
		Data: map[string]interface{}{
			"requests": filtered,
			"stats":    services.Stats(all),
		},
	})
}

// UpdateRequestStatus handles PUT /api/admin/requests/:id/status. The
// response carries the updated record; on failure nothing changes, so
// the store and the dashboard stay consistent.
func (ac *AdminController) UpdateRequestStatus(c echo.Context) error {
	id := c.Param("id")

	var body models.UpdateStatusRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	updated, err := ac.console.UpdateStatus(ctx, id, body.Status)
	if err != nil {
		if ve, ok := models.AsValidationErrors(err); ok {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: ve["status"],
			})
		}
		return backendErrorResponse(c, err, "Failed to update request status")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Status updated successfully",
		Data:    map[string]interface{}{"request": updated},
	})
}
