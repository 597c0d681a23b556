// Package notifier отправляет почтовые уведомления о завершённых
// сканированиях пользователям с включённой настройкой уведомлений.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/lib/smtp"
	"github.com/purescan-ai/purescan-backend/internal/models"
)

// UserGetter возвращает профиль пользователя по uid.
type UserGetter interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service потребляет события сканирования и рассылает письма.
type Service struct {
	users     UserGetter
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserGetter, transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		users:     users,
		transport: transport,
		log:       log,
	}
}

// HandleScanCompleted обрабатывает одно событие из очереди.
// Пользователи без адреса или с выключенными уведомлениями пропускаются.
func (s *Service) HandleScanCompleted(body []byte) error {
	const op = "notifier.HandleScanCompleted"

	var event models.ScanEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal scan event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUser(context.Background(), event.UserUID)
	if err != nil {
		s.log.Error("failed to load user for notification", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !user.Settings.Notifications || user.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("PureScan AI: аудит продукта «%s» завершён", event.ProductName)
	bodyText := fmt.Sprintf(
		"Здравствуйте, %s!\n\nАнализ состава завершён.\nПродукт: %s\nОценка: %s из 10\nВердикт: %s\n\nПолный разбор доступен в истории сканирований.",
		user.Name, event.ProductName, event.Score, event.Verdict)

	return s.sendEmail([]string{user.Email}, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			s.log.Warn("failed to close SMTP session", sl.Err(quitErr))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
