// Package viewstate реализует HTTP-обработчик чтения активного экрана сеанса.
// Конечная точка доступна и анонимно: без сеанса возвращается стартовый экран.
package viewstate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// Service описывает интерфейс чтения активного экрана.
type Service interface {
	View(ctx context.Context, userUID string) view.State
}

// Handler обрабатывает запросы на чтение активного экрана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Активный экран сеанса
// @Description Возвращает текущий экран; без сеанса — стартовый экран LANDING.
// @Tags Session
// @Produce  json
// @Success 200 {object} map[string]any "Активный экран"
// @Router /session/view [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.viewstate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := middlewarectx.UserUIDFromContext(r.Context())
	current := h.service.View(r.Context(), userUID)

	log.Debug("view state read", slog.String("uid", userUID), slog.String("view", string(current)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"view": current,
	}))
}
