package main

import (
	"time"

	"go.uber.org/zap"

	"mybudget/config"
	"mybudget/internal/cache"
	"mybudget/internal/handler"
	"mybudget/internal/httpserver"
	"mybudget/internal/mq"
	"mybudget/internal/repository"
	"mybudget/internal/service/auth"
	"mybudget/internal/service/expense"
	"mybudget/internal/token"
	"mybudget/pkg/db"
	"mybudget/pkg/logger"
	redisclient "mybudget/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	zlog := logger.NewLogger()
	defer zlog.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		zlog.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	expenseRepo := repository.NewExpenseRepository(dbConn)

	// The auth gate resolves users through a redis read-through cache.
	userCache := cache.NewUserCache(rdb, userRepo, 5*time.Minute)

	// Init Services
	tokenService := token.NewService(token.Config{Secret: cfg.JWT.Secret}, userCache)
	authService := auth.NewService(userRepo, tokenService)
	expenseService := expense.NewService(expenseRepo, publisher, zlog)

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	// Router
	router := httpserver.NewRouter(authHandler, expenseHandler, tokenService, dbConn)

	// Start API server
	if err := router.Run(cfg.Server.Port); err != nil {
		zlog.Fatal("server start failed", zap.Error(err))
	}
}
