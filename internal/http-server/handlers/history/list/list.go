// Package list реализует HTTP-обработчик выдачи истории сканирований.
// Записи возвращаются новые первыми; поддерживается пагинация limit/offset.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает интерфейс бизнес-логики выдачи истории.
type Service interface {
	List(ctx context.Context, userUID string, limit, offset int) ([]*models.HistoryItem, error)
}

// Handler обрабатывает запросы на выдачу истории.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary История сканирований
// @Description Возвращает записи истории текущего пользователя, новые первыми.
// @Tags History
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение от начала списка"
// @Success 200 {object} map[string]any "Записи истории"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или просрочен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /history [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := queryInt(r, "limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	userUID := middlewarectx.UserUIDFromContext(r.Context())
	items, err := h.service.List(r.Context(), userUID, limit, offset)
	if err != nil {
		log.Error("failed to list history", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read history"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items": items,
		"count": len(items),
	}))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
