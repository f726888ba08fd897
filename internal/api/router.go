package api

import (
	"log/slog"

	"github.com/alexmail/alexmail-backend/internal/api/handlers"
	"github.com/alexmail/alexmail-backend/internal/api/middleware"
	applog "github.com/alexmail/alexmail-backend/internal/logger"
	"github.com/alexmail/alexmail-backend/internal/repository"
	"github.com/alexmail/alexmail-backend/internal/services"
	"github.com/alexmail/alexmail-backend/internal/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB          *gorm.DB
	FileStorage storage.FileStorage
	Logger      *slog.Logger
	// Security configuration
	APIKey            string  // API key for authentication (empty = disabled)
	RateLimitRequests float64 // Requests per second per IP
	RateLimitBurst    int     // Burst size for rate limiter
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware, outermost first
	e.Use(middleware.Recover())
	e.Use(middleware.SecureHeaders())
	e.Use(middleware.SecureCORS())
	e.Use(middleware.RateLimiter(cfg.RateLimitRequests, cfg.RateLimitBurst, cfg.Logger))
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	mailRepo := repository.NewMailRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB, cfg.FileStorage)

	// Initialize services
	secLog := applog.NewSecurityLogger()
	userService := services.NewUserService(userRepo, secLog)
	mailService := services.NewMailService(mailRepo, userRepo, cfg.FileStorage, cfg.Logger)
	queryService := services.NewMailQueryService(mailRepo, userRepo, cfg.FileStorage, cfg.Logger)
	exporter := services.NewMailExporter(mailRepo, cfg.FileStorage, cfg.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	userHandler := handlers.NewUserHandler(userService)
	mailHandler := handlers.NewMailHandler(mailService, exporter)
	folderHandler := handlers.NewFolderHandler(mailService, queryService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentRepo, mailRepo, cfg.FileStorage)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// API routes
	api := e.Group("/api")
	api.Use(middleware.APIKeyAuth(cfg.APIKey, cfg.Logger))

	// Account routes
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)

	// Mail routes
	mail := api.Group("/mail")
	mail.POST("/send", mailHandler.Send)
	mail.POST("/send-with-attachments", mailHandler.SendWithAttachments)
	mail.POST("/draft", mailHandler.Draft)
	mail.PUT("/:id/draft", mailHandler.UpdateDraft)
	mail.GET("/:id", mailHandler.Get)
	mail.GET("/:id/export", mailHandler.Export)
	mail.PATCH("/:id/read", mailHandler.MarkRead)
	mail.PATCH("/:id/unread", mailHandler.MarkUnread)
	mail.DELETE("/:id", mailHandler.Trash)
	mail.DELETE("/:id/unchecked", mailHandler.TrashLegacy)
	mail.DELETE("/:id/permanent", mailHandler.Delete)
	mail.GET("/:id/attachments", attachmentHandler.List)

	// Attachment downloads stream the stored file instead of inlining it
	api.GET("/attachments/:id/download", attachmentHandler.Download)

	// Copy lives under /folder for historical reasons
	api.POST("/folder/copy", mailHandler.Copy)

	// Per-user folder and listing routes
	users.GET("/:email/folders", folderHandler.List)
	users.POST("/:email/folders", folderHandler.Create)
	users.DELETE("/:email/folders/:name", folderHandler.Delete)
	users.PUT("/:email/folders/:name", folderHandler.Rename)
	users.GET("/:email/mail", folderHandler.ListMail)
	users.GET("/:email/inbox/sorted", folderHandler.SortedInbox)

	return e
}
