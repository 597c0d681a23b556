// Package history содержит бизнес-логику журнала сканирований:
// добавление записей, выдачу списка и повторное открытие результата.
// Журнал только пополняется; записи не изменяются и не вытесняются.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/purescan-ai/purescan-backend/internal/cache"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// placeholderProductName подставляется, когда результат не содержит названия.
const placeholderProductName = "Анализ состава"

const (
	sessionTTL = 30 * 24 * time.Hour
	displayFmt = "02.01.2006"
)

// Repository определяет методы для работы с историей в хранилище.
type Repository interface {
	// CreateHistoryItem добавляет запись истории.
	CreateHistoryItem(ctx context.Context, item models.HistoryItem) error
	// ListHistory возвращает записи пользователя, новые первыми.
	ListHistory(ctx context.Context, userUID string, limit, offset int) ([]*models.HistoryItem, error)
	// GetHistoryItem возвращает запись пользователя по id.
	GetHistoryItem(ctx context.Context, userUID, itemID string) (*models.HistoryItem, error)
}

// Cache описывает методы для кэширования сеансового состояния.
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service реализует операции журнала сканирований.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Append выводит запись истории из результата сканирования и сохраняет её.
// Запись попадает в голову списка; сохранение ожидается, и его ошибка
// возвращается вызывающему, а не проглатывается.
func (s *Service) Append(ctx context.Context, userUID string, result models.ScanResult) (*models.HistoryItem, error) {
	const op = "history.Append"

	productName := result.ProductName
	if productName == "" {
		productName = placeholderProductName
	}
	item := models.HistoryItem{
		ID:          result.ID,
		UserUID:     userUID,
		Date:        time.Now().Format(displayFmt),
		ProductName: productName,
		Score:       result.Score,
		Status:      result.Status,
		RawResult:   result,
	}

	if err := s.repo.CreateHistoryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("history item appended", slog.String("uid", userUID), slog.String("id", item.ID))
	return &item, nil
}

// List возвращает записи истории пользователя, новые первыми.
func (s *Service) List(ctx context.Context, userUID string, limit, offset int) ([]*models.HistoryItem, error) {
	return s.repo.ListHistory(ctx, userUID, limit, offset)
}

// Reopen делает сохранённый результат текущим и переводит экран на RESULT.
func (s *Service) Reopen(ctx context.Context, userUID, itemID string) (*models.ScanResult, error) {
	const op = "history.Reopen"

	item, err := s.repo.GetHistoryItem(ctx, userUID, itemID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cache.CurrentResultKey(userUID), item.RawResult, sessionTTL); err != nil {
		s.log.Warn("failed to cache current result", sl.Err(err))
	}
	if err := s.cache.Set(ctx, cache.ViewKey(userUID), view.Result, sessionTTL); err != nil {
		s.log.Warn("failed to cache view state", sl.Err(err))
	}
	return &item.RawResult, nil
}
