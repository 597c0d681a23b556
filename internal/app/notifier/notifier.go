// Package notifier собирает сервис почтовых уведомлений: подключение
// к хранилищу и брокеру, SMTP-транспорт и потребитель очереди событий.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/purescan-ai/purescan-backend/internal/config"
	"github.com/purescan-ai/purescan-backend/internal/lib/smtp"
	"github.com/purescan-ai/purescan-backend/internal/rabbitmq"
	notifierservice "github.com/purescan-ai/purescan-backend/internal/services/notifier"
	"github.com/purescan-ai/purescan-backend/internal/storage"
	"github.com/purescan-ai/purescan-backend/internal/storage/repository"
)

// App инкапсулирует подключения и сервис уведомлений.
type App struct {
	conn            *amqp.Connection
	ch              *amqp.Channel
	notifierService *notifierservice.Service
	queue           string
	logger          *slog.Logger
}

// New инициализирует приложение уведомлений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.ScanExchange, cfg.RabbitMQ.ScanQueue)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	repo := repository.New(db)
	notifierService := notifierservice.New(repo, transport, logger)

	return &App{
		conn:            conn,
		ch:              ch,
		notifierService: notifierService,
		queue:           cfg.RabbitMQ.ScanQueue,
		logger:          logger,
	}, nil
}

// Run запускает потребителя очереди и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, a.queue, a.notifierService.HandleScanCompleted)
	if err != nil {
		a.logger.Error("failed to start scan events consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
