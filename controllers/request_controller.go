package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventnow/eventnow_backend/models"
	"github.com/eventnow/eventnow_backend/services"
)

// RequestController exposes the public submission and lookup endpoints.
type RequestController struct {
	service *services.RequestService
}

func NewRequestController(service *services.RequestService) *RequestController {
	return &RequestController{service: service}
}

// Submit handles POST /api/requests. Validation failures come back as a
// field-to-message map so the form can render them inline; backend
// failures map to distinct retryable messages.
func (rc *RequestController) Submit(c echo.Context) error {
	var input models.SubmitRequestInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	req, err := rc.service.Submit(ctx, input)
	if err != nil {
		if ve, ok := models.AsValidationErrors(err); ok {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Validation failed",
				Data:    map[string]interface{}{"errors": ve},
			})
		}
		return backendErrorResponse(c, err, "Failed to submit request")
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Request submitted successfully",
		Data:    map[string]interface{}{"requestId": req.RequestID},
	})
}

// Lookup handles GET /api/requests/lookup?email=. The match is exact and
// case-sensitive; ordering is left to the caller.
func (rc *RequestController) Lookup(c echo.Context) error {
	email := c.QueryParam("email")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	requests, err := rc.service.LookupByEmail(ctx, email)
	if err != nil {
		if ve, ok := models.AsValidationErrors(err); ok {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: ve["email"],
				Data:    map[string]interface{}{"errors": ve},
			})
		}
		return backendErrorResponse(c, err, "Failed to retrieve requests")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Requests retrieved successfully",
		Data: map[string]interface{}{
			"count":    len(requests),
			"requests": requests,
		},
	})
}

// backendErrorResponse maps the failure taxonomy to user-facing
// responses. Nothing retries automatically; the caller decides.
func backendErrorResponse(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied. Please check store permissions.",
		})
	case errors.Is(err, models.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, models.Response{
			Status:  http.StatusServiceUnavailable,
			Message: "Service temporarily unavailable. Please try again later.",
		})
	case errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Request not found",
		})
	}

	log.Printf("Backend error: %v", err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: fallback,
	})
}
