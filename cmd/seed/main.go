package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"filedrop/internal/auth"
	"filedrop/internal/config"
	"filedrop/internal/db"
	"filedrop/internal/model"
	"filedrop/internal/repository"
)

// Seeds an admin user for local development. Email and password come from
// SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD; the script is idempotent.
func main() {
	log.Println("Starting seed script...")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.FileLink{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	repo := repository.NewUserRepository(gormDB)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin user %s already exists, nothing to do", email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Seeded admin user %s (id %s)", admin.Email, admin.ID)
}
