package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	_ "realagent/docs" // swagger docs

	"realagent/internal/cache"
	"realagent/internal/config"
	"realagent/internal/db"
	"realagent/internal/handler"
	"realagent/internal/model"
	"realagent/internal/repository"
	"realagent/internal/router"
	"realagent/internal/service"
)

// @title Real Agent API
// @version 1.0
// @description Backend API for the Real Agent system - user management.
// @host localhost:8000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)

	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	statsHandler := handler.NewStatsHandler(userService)

	router.Register(e, cfg, userHandler, authHandler, statsHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
