// Package purescan собирает основное приложение: хранилище, кеш, брокер,
// клиент генеративной модели, бизнес-сервисы и HTTP-сервер.
package purescan

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/purescan-ai/purescan-backend/internal/cache"
	"github.com/purescan-ai/purescan-backend/internal/config"
	"github.com/purescan-ai/purescan-backend/internal/genai"
	"github.com/purescan-ai/purescan-backend/internal/lib/jwt"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/migrations"
	"github.com/purescan-ai/purescan-backend/internal/rabbitmq"
	historyservice "github.com/purescan-ai/purescan-backend/internal/services/history"
	scanservice "github.com/purescan-ai/purescan-backend/internal/services/scan"
	sessionservice "github.com/purescan-ai/purescan-backend/internal/services/session"
	"github.com/purescan-ai/purescan-backend/internal/storage"
	"github.com/purescan-ai/purescan-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и подключения к внешним системам.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
}

// New инициализирует приложение: подключения, миграции, сервисы и маршруты.
// Недоступный RabbitMQ не останавливает запуск: события сканирования
// просто не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var amqpConn *amqp.Connection
	var publisher scanservice.EventPublisher
	amqpConn, err = rabbitmq.Connect(cfg.RabbitMQ.URL, 3, 2*time.Second)
	if err != nil {
		logger.Warn("rabbitmq is unavailable, scan events will not be published", sl.Err(err))
	} else {
		ch, chErr := rabbitmq.SetupChannel(amqpConn, cfg.RabbitMQ.ScanExchange, cfg.RabbitMQ.ScanQueue)
		if chErr != nil {
			logger.Warn("failed to set up rabbitmq channel", sl.Err(chErr))
		} else {
			publisher = rabbitmq.NewScanEventPublisher(ch, cfg.RabbitMQ.ScanExchange)
		}
	}

	repo := repository.New(db)
	jwtMaker := jwt.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	auditor := genai.New(cfg.Gemini)

	sessionService := sessionservice.New(repo, cacheRedis, jwtMaker, logger, cfg.ScanSettings.BillingDelay)
	historyService := historyservice.New(repo, cacheRedis, logger)
	scanService := scanservice.New(auditor, repo, historyService, cacheRedis, publisher, logger, cfg.ScanSettings.ProgressTick)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db,
		sessionService, historyService, scanService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		amqp:   amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и выполняет мягкую остановку по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqp != nil {
			_ = a.amqp.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
