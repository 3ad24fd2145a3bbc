package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"workboard/internal/auth"
	"workboard/internal/cache"
	"workboard/internal/config"
	"workboard/internal/db"
	"workboard/internal/handler"
	"workboard/internal/model"
	"workboard/internal/repository"
	"workboard/internal/router"
	"workboard/internal/service"
)

// @title Workboard API
// @version 1.0
// @description Production-tracking API for a workshop: orders on a staged kanban pipeline with role-based visibility and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Workman{},
		&model.Stage{},
		&model.Order{},
		&model.Note{},
		&model.StagePermission{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	workmanRepo := repository.NewWorkmanRepository(gormDB)
	stageRepo := repository.NewStageRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	if err := ensureDefaults(context.Background(), stageRepo, userRepo); err != nil {
		log.Fatalf("ensure defaults: %v", err)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	policy := service.NewAccessPolicy()
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	workmanService := service.NewWorkmanService(workmanRepo)
	stageService := service.NewStageService(stageRepo, orderRepo, cacheClient, policy)
	orderService := service.NewOrderService(orderRepo, stageRepo, noteRepo, policy)
	noteService := service.NewNoteService(noteRepo, orderRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	workmanHandler := handler.NewWorkmanHandler(workmanService)
	stageHandler := handler.NewStageHandler(stageService, orderService)
	orderHandler := handler.NewOrderHandler(orderService)
	noteHandler := handler.NewNoteHandler(noteService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		userHandler,
		workmanHandler,
		stageHandler,
		orderHandler,
		noteHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// defaultStageTitles seeds a fresh install with the workshop's standard pipeline.
var defaultStageTitles = []string{
	"Received",
	"Design",
	"Cutting",
	"Assembly",
	"Finishing",
	"Quality Check",
	"Completed",
}

// ensureDefaults seeds the standard pipeline and a default admin account on
// an empty database. Idempotent: existing rows are left alone.
func ensureDefaults(ctx context.Context, stageRepo repository.StageRepository, userRepo repository.UserRepository) error {
	stages, err := stageRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		for i, title := range defaultStageTitles {
			if err := stageRepo.Create(ctx, &model.Stage{Title: title, Position: i}); err != nil {
				return err
			}
		}
		log.Printf("seeded %d default stages", len(defaultStageTitles))
	}

	users, err := userRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return err
		}
		admin := &model.User{
			Username:     "admin",
			Email:        "admin@workshop.com",
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
			Name:         "Administrator",
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return err
		}
		log.Println("seeded default admin user (change the password)")
	}

	return nil
}
