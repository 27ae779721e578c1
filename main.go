package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sitescope/backend/internal/ai"
	"github.com/sitescope/backend/internal/api"
	"github.com/sitescope/backend/internal/db"
	"github.com/sitescope/backend/internal/mailer"
	"github.com/sitescope/backend/internal/middleware"
	"github.com/sitescope/backend/internal/pagespeed"
	"github.com/sitescope/backend/internal/scraper"
)

// Config holds application configuration
type Config struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig creates a new configuration from environment variables
func NewConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:            port,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}
}

func main() {
	loadEnv()
	config := NewConfig()

	// Initialize database
	logrus.Info("Initializing database...")
	dbConn, err := db.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	logrus.Info("Database initialized successfully")

	// Build services once; handlers receive them by reference.
	scraperService := scraper.NewService(pagespeed.NewClient(os.Getenv("PAGE_INSIGHTS_API_KEY")))

	var gateway *ai.Gateway
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		completer := ai.NewAnthropicCompleter(apiKey, os.Getenv("ANTHROPIC_MODEL"))
		gateway = ai.NewGateway(completer)
	} else {
		logrus.Warn("ANTHROPIC_API_KEY not set, AI endpoints will return 503")
	}

	mail := mailer.NewFromEnv()
	if !mail.Configured() {
		logrus.Warn("SMTP_HOST not set, OTP emails will not be delivered")
	}

	authConfig := api.NewAuthConfig()

	// Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Add middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	// Health check endpoint
	r.GET("/api/health/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "Backend API is running!",
			"timestamp": time.Now().UTC(),
			"service":   "sitescope",
		})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/scrape/", api.ScrapeHandler(scraperService))

		aiGroup := apiGroup.Group("/ai")
		{
			aiGroup.POST("/optimize-title/", api.OptimizeTitleHandler(gateway))
			aiGroup.POST("/optimize-description/", api.OptimizeDescriptionHandler(gateway))
			aiGroup.POST("/generate-keywords/", api.GenerateKeywordsHandler(gateway))
			aiGroup.POST("/content-improvements/", api.ContentImprovementsHandler(gateway))
			aiGroup.POST("/heading-suggestions/", api.HeadingSuggestionsHandler(gateway))
			aiGroup.POST("/comprehensive-analysis/", api.ComprehensiveAnalysisHandler(gateway))
			aiGroup.POST("/chat/", api.ChatHandler(gateway))
		}

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register/", api.RegisterHandler(dbConn, mail))
			authGroup.POST("/verify-otp/", api.VerifyOTPHandler(dbConn, authConfig))
			authGroup.POST("/resend-otp/", api.ResendOTPHandler(dbConn, mail))
			authGroup.POST("/login/", api.LoginHandler(dbConn, authConfig))
			authGroup.POST("/forgot-password/", api.ForgotPasswordHandler(dbConn, mail))
			authGroup.POST("/reset-password/", api.ResetPasswordHandler(dbConn))

			authorized := authGroup.Group("/")
			authorized.Use(middleware.JWTRequired())
			{
				authorized.POST("/logout/", api.LogoutHandler())
				authorized.GET("/user/", api.CurrentUserHandler(dbConn))
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
