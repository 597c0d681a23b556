// Package progress реализует HTTP-обработчик опроса прогресса сканирования.
// Прогресс синтетический: он растёт тиками на сервере, пока идёт анализ.
package progress

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
)

// Service описывает интерфейс чтения прогресса.
type Service interface {
	Progress(ctx context.Context, userUID string) float64
}

// Handler обрабатывает запросы на чтение прогресса сканирования.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прогресс сканирования
// @Description Возвращает текущий прогресс активного сканирования в процентах.
// @Tags Scan
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Прогресс в диапазоне 0–100"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или просрочен токен"
// @Router /scan/progress [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.scan.progress"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := middlewarectx.UserUIDFromContext(r.Context())
	p := h.service.Progress(r.Context(), userUID)

	log.Debug("progress read", slog.String("uid", userUID), slog.Float64("progress", p))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"progress": p,
	}))
}
