package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/limiter"
	"reviewhub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional; without it the auth limiter runs in process memory.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}
	authLimiter := limiter.New(redisClient, cfg.AuthRateLimit, cfg.AuthRateWindow)

	var codeMailer mailer.Mailer
	if cfg.SMTPAddr != "" {
		codeMailer = mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom, logger)
	} else {
		codeMailer = mailer.NewLogMailer(logger)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	// HTTP surface
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	v1 := r.Group("/api/v1")
	handler.NewAuthHandler(authService, codeMailer, authLimiter).RegisterRoutes(v1)
	handler.NewUserHandler(userService).RegisterRoutes(v1, authService)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(v1, authService)
	handler.NewGenreHandler(genreService).RegisterRoutes(v1, authService)
	handler.NewTitleHandler(titleService).RegisterRoutes(v1, authService)
	handler.NewReviewHandler(reviewService).RegisterRoutes(v1, authService)
	handler.NewCommentHandler(commentService).RegisterRoutes(v1, authService)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("API server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
