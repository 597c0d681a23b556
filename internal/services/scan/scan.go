// Package scan реализует пайплайн сканирования: проверку квоты,
// вызов генеративной модели, маппинг ответа в доменный результат,
// запись в историю и публикацию события. Синтетический прогресс
// тикает в отдельной горутине и гарантированно останавливается
// при любом исходе сетевого вызова.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/purescan-ai/purescan-backend/internal/cache"
	"github.com/purescan-ai/purescan-backend/internal/genai"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/metrics"
	"github.com/purescan-ai/purescan-backend/internal/models"
)

// Ошибки пайплайна, различимые на уровне обработчиков.
var (
	// ErrEmptyInput возвращается, когда не передано ни изображение, ни текст.
	ErrEmptyInput = errors.New("empty scan input")
	// ErrQuotaExceeded возвращается при исчерпанной квоте бесплатного тарифа.
	ErrQuotaExceeded = errors.New("scan quota exceeded")
	// ErrAuditFailed охватывает сетевые ошибки и неразборчивый ответ модели.
	ErrAuditFailed = errors.New("audit failed")
)

const (
	// Прогресс растёт на progressStep за тик и упирается в progressCeiling,
	// пока не придёт настоящий ответ; тогда он прыгает на 100.
	progressStep    = 0.7
	progressCeiling = 92.0
	progressTTL     = 10 * time.Minute
	sessionTTL      = 30 * 24 * time.Hour
)

// UserRepository определяет доступ к профилю и квоте сканирований.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ConsumeScan атомарно списывает одно сканирование с квоты.
	ConsumeScan(ctx context.Context, userUID string) (int, error)
}

// HistoryAppender добавляет запись в журнал сканирований.
type HistoryAppender interface {
	Append(ctx context.Context, userUID string, result models.ScanResult) (*models.HistoryItem, error)
}

// Cache описывает методы для сеансового состояния и прогресса.
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, result any) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher публикует событие завершённого сканирования.
type EventPublisher interface {
	PublishScanCompleted(event models.ScanEvent) error
}

// Service реализует пайплайн сканирования.
type Service struct {
	auditor   genai.Auditor
	users     UserRepository
	history   HistoryAppender
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
	tick      time.Duration
}

// New создает новый экземпляр Service. publisher может быть nil,
// тогда события не публикуются.
func New(auditor genai.Auditor, users UserRepository, history HistoryAppender,
	cache Cache, publisher EventPublisher, log *slog.Logger, tick time.Duration) *Service {
	return &Service{
		auditor:   auditor,
		users:     users,
		history:   history,
		cache:     cache,
		publisher: publisher,
		log:       log,
		tick:      tick,
	}
}

// Scan выполняет один проход пайплайна. Изображение имеет приоритет над
// текстом. Квота бесплатного тарифа списывается только после успешного
// анализа: неудачное сканирование не стоит пользователю попытки.
func (s *Service) Scan(ctx context.Context, userUID string, input models.ScanInput) (*models.ScanResult, error) {
	const op = "scan.Scan"

	if input.Empty() {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.Plan.Metered() && user.ScansLeft <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
	}

	// Тикер и сетевой вызов работают параллельно; join гарантирует,
	// что тикер остановлен до записи терминального значения прогресса.
	progressCtx, cancelProgress := context.WithCancel(ctx)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		s.tickProgress(progressCtx, userUID)
	}()
	stopProgress := func() {
		cancelProgress()
		<-progressDone
	}
	defer stopProgress()

	started := time.Now()
	raw, err := s.auditor.Audit(ctx, input.ImageBase64, input.Ingredients)
	metrics.ScanDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		stopProgress()
		metrics.ScanFailuresTotal.Inc()
		if cerr := s.cache.Invalidate(ctx, cache.ProgressKey(userUID)); cerr != nil {
			s.log.Warn("failed to reset progress", sl.Err(cerr))
		}
		s.log.Error("audit request failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, ErrAuditFailed)
	}

	result := mapAudit(raw, input)

	if user.Plan.Metered() {
		if _, err := s.users.ConsumeScan(ctx, userUID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if _, err := s.history.Append(ctx, userUID, *result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cache.CurrentResultKey(userUID), result, sessionTTL); err != nil {
		s.log.Warn("failed to cache current result", sl.Err(err))
	}

	stopProgress()
	if err := s.cache.Set(ctx, cache.ProgressKey(userUID), 100.0, progressTTL); err != nil {
		s.log.Warn("failed to finalize progress", sl.Err(err))
	}

	if s.publisher != nil {
		event := models.ScanEvent{
			UserUID:     userUID,
			ResultID:    result.ID,
			ProductName: result.ProductName,
			Score:       result.Score,
			Status:      result.Status,
			Verdict:     result.Verdict,
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.publisher.PublishScanCompleted(event); err != nil {
			s.log.Warn("failed to publish scan event", sl.Err(err))
		}
	}

	metrics.ScansTotal.WithLabelValues(result.Status).Inc()
	s.log.Info("scan completed",
		slog.String("uid", userUID),
		slog.String("result_id", result.ID),
		slog.String("status", result.Status))
	return result, nil
}

// Progress возвращает текущий синтетический прогресс сканирования.
func (s *Service) Progress(ctx context.Context, userUID string) float64 {
	var p float64
	found, err := s.cache.Get(ctx, cache.ProgressKey(userUID), &p)
	if err != nil {
		s.log.Warn("failed to read progress", sl.Err(err))
	}
	if !found {
		return 0
	}
	return p
}

// tickProgress продвигает синтетический прогресс, пока не отменят контекст.
// Прогресс аппроксимация: настоящего сигнала от удалённого сервиса нет.
func (s *Service) tickProgress(ctx context.Context, userUID string) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	// Записи переживают отмену тикера: ключ чистится выше по пайплайну.
	writeCtx := context.WithoutCancel(ctx)

	p := 0.0
	if err := s.cache.Set(writeCtx, cache.ProgressKey(userUID), p, progressTTL); err != nil {
		s.log.Warn("failed to write progress", sl.Err(err))
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p < progressCeiling {
				p += progressStep
			}
			if err := s.cache.Set(writeCtx, cache.ProgressKey(userUID), p, progressTTL); err != nil {
				s.log.Warn("failed to write progress", sl.Err(err))
				return
			}
		}
	}
}
