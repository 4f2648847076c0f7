package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "filedrop/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"filedrop/internal/auth"
	"filedrop/internal/cache"
	"filedrop/internal/config"
	"filedrop/internal/db"
	"filedrop/internal/handler"
	"filedrop/internal/mail"
	"filedrop/internal/model"
	"filedrop/internal/repository"
	"filedrop/internal/router"
	"filedrop/internal/service"
	"filedrop/internal/storage"
)

// @title Filedrop API
// @version 1.0
// @description User accounts with JWT authentication, password reset by email, role-based access and file upload to a storage bucket.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.FileLink{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.FileLink{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize collaborators
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	mailer, err := mail.NewClient(cfg.SMTPHost, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	if err != nil {
		log.Fatalf("mail init: %v", err)
	}
	uploader, err := storage.NewS3Uploader(context.Background(),
		cfg.S3Region, cfg.S3Endpoint, cfg.S3PublicURL, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, mailer, cfg.PublicURL)
	userService := service.NewUserService(userRepo, cacheClient)
	fileService := service.NewFileService(userRepo, uploader)

	// Initialize handlers
	sender := handler.NewTokenSender(cfg.JWTCookieDays, cfg.IsProduction())
	authHandler := handler.NewAuthHandler(authService, sender)
	userHandler := handler.NewUserHandler(userService)
	fileHandler := handler.NewFileHandler(fileService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		userHandler,
		fileHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
