package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hawbir/minbar/backend/internal/access"
	"github.com/hawbir/minbar/backend/internal/config"
	"github.com/hawbir/minbar/backend/internal/database"
	"github.com/hawbir/minbar/backend/internal/handlers"
	"github.com/hawbir/minbar/backend/internal/middleware"
	"github.com/hawbir/minbar/backend/internal/storage"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer(cfg *config.Config, uploader storage.Uploader) *http.Server {
	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB(), cfg, uploader)

	// Create server instance
	newServer := &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", cfg.ServerPort),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %d\n", cfg.ServerPort)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	gormDB := s.db.GetDB()
	eval := access.NewEvaluator(s.cfg.AdminEmail)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Article routes (public reads)
		api.GET("/articles", s.handler.Article.GetArticles)
		api.GET("/articles/:id", s.handler.Article.GetArticle)
		api.GET("/search", s.handler.Article.Search)

		// Comment routes (public reads)
		api.GET("/articles/:id/comments", s.handler.Engagement.GetComments)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)
		api.GET("/contributors", s.handler.User.GetContributors)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.cfg.JWTSecret))
		protected.Use(middleware.RequireNotBanned(gormDB))
		{
			// Auth protected routes
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.GET("/me/articles", s.handler.Article.GetMyArticles)

			// Article protected routes
			protected.POST("/articles", s.handler.Article.CreateArticle)
			protected.PUT("/articles/:id", s.handler.Article.UpdateArticle)
			protected.DELETE("/articles/:id", s.handler.Article.DeleteArticle)
			protected.POST("/articles/:id/like", s.handler.Engagement.ToggleLike)
			protected.GET("/articles/:id/liked", s.handler.Engagement.IsLiked)

			// Comment protected routes
			protected.POST("/articles/:id/comments", s.handler.Engagement.CreateComment)
			protected.DELETE("/comments/:commentId", s.handler.Engagement.DeleteComment)

			// User protected routes
			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)

			// Upload protected routes
			protected.POST("/uploads", s.handler.Upload.Upload)

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin(gormDB, eval))
			{
				admin.GET("/articles/pending", s.handler.Admin.GetPendingArticles)
				admin.GET("/articles/pending/count", s.handler.Admin.GetPendingCount)
				admin.PUT("/articles/:id/status", s.handler.Admin.SetArticleStatus)
				admin.GET("/users", s.handler.Admin.GetUsers)
				admin.PUT("/users/:id/role", s.handler.Admin.SetUserRole)
				admin.PUT("/users/:id/verify", s.handler.Admin.SetUserVerified)
				admin.PUT("/users/:id/ban", s.handler.Admin.SetUserBanned)
			}
		}
	}

	return r
}
