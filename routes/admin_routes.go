package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/eventnow/eventnow_backend/controllers"
)

// RegisterAdminRoutes sets up the console endpoints. Login, logout and
// session operate on the presented token directly; the request console
// sits behind the admin auth middleware, which re-checks directory
// membership on every call.
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController, adminAuth echo.MiddlewareFunc) {
	e.POST("/api/admin/login", adminController.Login)
	e.POST("/api/admin/logout", adminController.Logout)
	e.GET("/api/admin/session", adminController.Session)

	console := e.Group("/api/admin", adminAuth)
	console.GET("/requests", adminController.GetRequests)
	console.PUT("/requests/:id/status", adminController.UpdateRequestStatus)
}
