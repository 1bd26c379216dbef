package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/eventnow/eventnow_backend/controllers"
)

// RegisterRequestRoutes sets up the public, unauthenticated endpoints.
// Lookup being open is documented product behavior: anyone who knows a
// submitter's email can read that email's requests.
func RegisterRequestRoutes(e *echo.Echo, requestController *controllers.RequestController) {
	e.POST("/api/requests", requestController.Submit)
	e.GET("/api/requests/lookup", requestController.Lookup)
}
