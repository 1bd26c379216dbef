package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/eventnow/eventnow_backend/config"
	"github.com/eventnow/eventnow_backend/controllers"
	"github.com/eventnow/eventnow_backend/middleware"
	"github.com/eventnow/eventnow_backend/repositories"
	"github.com/eventnow/eventnow_backend/routes"
	"github.com/eventnow/eventnow_backend/services"
	"github.com/eventnow/eventnow_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Connect to database
	client := config.ConnectDB(cfg)
	db := client.Database(cfg.DBName)

	// Connect to Redis (nil means in-memory fallback)
	redisClient := config.ConnectRedis(cfg)

	// Initialize Firebase (nil means local credential store)
	firebaseApp, err := config.InitFirebase(cfg)
	if err != nil {
		log.Fatal("Firebase initialization error:", err)
	}

	// Token blacklist backs logout and session revocation
	var blacklist services.TokenBlacklist
	if redisClient != nil {
		blacklist = services.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = services.NewMemoryTokenBlacklist()
	}

	// Identity provider: Firebase when configured, local otherwise
	var identity services.IdentityProvider
	if firebaseApp != nil && cfg.FirebaseAPIKey != "" {
		identity, err = services.NewFirebaseIdentityService(firebaseApp, cfg.FirebaseAPIKey)
		if err != nil {
			log.Fatal("Firebase auth client error:", err)
		}
		log.Println("Using Firebase identity provider")
	} else {
		identity = services.NewLocalIdentityService(db)
		log.Println("Using local identity provider")
	}

	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail, cfg.AdminEmail)

	// Initialize repositories
	requestRepo := repositories.NewRequestRepository(db)
	adminDirectory := repositories.NewAdminDirectory(db)

	// Initialize services
	requestService := services.NewRequestService(requestRepo, mailer)
	consoleService := services.NewAdminConsoleService(requestRepo)
	sessionGuard := services.NewSessionGuard(identity, adminDirectory, blacklist, []byte(cfg.JWTSecret))

	sessionGuard.Subscribe(func(state services.SessionState) {
		log.Printf("Session state: %s user=%s", state.State, state.UserID)
	})

	// Initialize controllers
	requestController := controllers.NewRequestController(requestService)
	adminController := controllers.NewAdminController(sessionGuard, consoleService)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: cfg.AllowedOrigins,
		AllowInlineJS:  false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "EventNow Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Register routes
	routes.RegisterRequestRoutes(e, requestController)

	adminAuth := middleware.AdminAuth([]byte(cfg.JWTSecret), blacklist, adminDirectory)
	routes.RegisterAdminRoutes(e, adminController, adminAuth)

	log.Printf("Starting server on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
