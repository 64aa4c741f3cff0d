package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/api/handlers"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/middleware"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/routes"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/note"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/todo"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/tracking"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/user"
	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/cache"
	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/migrations"
	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/scheduler"
	"github.com/crisprlt/HabitFlow-sub000/pkg/config"
	"github.com/crisprlt/HabitFlow-sub000/pkg/logger"
	"github.com/crisprlt/HabitFlow-sub000/pkg/mail"
	"github.com/crisprlt/HabitFlow-sub000/pkg/security/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			"Vary",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis. The API keeps working without it: caching and rate
	// limiting are skipped, everything else hits postgres directly.
	var redisClient *cache.RedisClient
	var rateLimiter auth.RateLimiter
	redisClient, err = cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
	if err != nil {
		log.Warn("Redis unavailable, running without cache and rate limiting", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		rateLimiter = auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 60)
	}

	// Create cache middleware instance
	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, 5*time.Minute)

	// Initialize repositories
	habitRepo := habit.NewRepository(db)
	trackingRepo := tracking.NewRepository(db)
	noteRepo := note.NewRepository(db)
	todoRepo := todo.NewRepository(db)
	userRepo := user.NewRepository(db)

	// Initialize auth and mail
	jwtService := auth.NewJWTService(cfg)
	oauthService := auth.NewOAuthService(cfg)
	mailer := mail.NewLogMailer(cfg)

	// Initialize services
	habitService := habit.NewService(habitRepo, redisClient, log.Logger)
	trackingService := tracking.NewService(trackingRepo, habitRepo, log.Logger)
	noteService := note.NewService(noteRepo, log.Logger)
	todoService := todo.NewService(todoRepo, log.Logger)
	userService := user.NewService(userRepo, jwtService, mailer, log.Logger)

	// Initialize and start the reconciliation scheduler
	reconciler := scheduler.NewScheduler(trackingService, log)
	reconciler.Start()
	defer reconciler.Stop()

	// Initialize handlers
	habitsHandler := handlers.NewHabitsHandler(habitService)
	trackingHandler := handlers.NewTrackingHandler(trackingService, noteService)
	notesHandler := handlers.NewNotesHandler(noteService)
	todoHandler := handlers.NewTodoHandler(todoService)
	userHandler := handlers.NewUserHandler(userService)
	oauthHandler := handlers.NewOAuthHandler(oauthService, userService)

	// Register routes
	routes.NewHealthRoutes(db, redisClient).RegisterRoutes(router)
	routes.NewUserRoutes(userHandler, cfg.Auth.JWTSecret, rateLimiter).RegisterRoutes(router)
	routes.NewOAuthRoutes(oauthHandler).RegisterRoutes(router)
	routes.NewHabitsRoutes(habitsHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewTrackingRoutes(trackingHandler, notesHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewTodoRoutes(todoHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)

	for _, route := range router.Routes() {
		log.Info("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
