package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/config"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/guard"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/handler"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/notify"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/provider/zcredit"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/refgen"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/repository"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/router"
	usecase "github.com/Shani242/Z-Credit-Payment-Module/internal/usecase/transaction"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/validation"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewServer(cfg config.AppConfig, logger *zap.Logger) (*http.Server, error) {
	// --- Connect Postgres ---
	dbConnStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)
	dbPool, err := pgxpool.New(context.Background(), dbConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database", zap.String("database", cfg.Database.DBName))

	// --- Init Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	// --- Gateway selection (mock vs live) ---
	var gateway domain.Gateway
	if cfg.ZCredit.UseMock {
		gateway = zcredit.NewMockGateway(cfg.ZCredit)
	} else {
		gateway = zcredit.NewClient(cfg.ZCredit.EndpointURL, cfg.ZCredit.Timeout)
	}
	logger.Info("payment gateway initialized",
		zap.String("gateway", gateway.Name()),
		zap.Duration("timeout", cfg.ZCredit.Timeout))

	// --- Notification sinks ---
	hub := notify.NewHub(logger)
	go hub.Run()
	sink := notify.MultiSink{notify.NewZapSink(logger), hub}

	// --- Core wiring ---
	repo := repository.NewTransactionRepository(dbPool)
	validator := validation.New(cfg.ZCredit.MaxAmount)
	locker := guard.NewRedisLocker(rdb, 2*cfg.ZCredit.Timeout)
	refs := refgen.New("ZC")

	txUC := usecase.NewTransactionUsecase(repo, gateway, validator, locker, refs, sink, logger)

	// --- Handlers ---
	txHandler := handler.NewTransactionHandler(txUC, logger)
	wsHandler := handler.NewWSHandler(hub, logger)

	// --- Router ---
	r := router.SetupRoutes(txHandler, wsHandler, logger)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ZCredit.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}
