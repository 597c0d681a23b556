// Package event реализует HTTP-обработчик навигационных событий.
//
// Событие проводит активный экран через автомат переходов; неизвестное
// или неприменимое в текущем экране событие оставляет экран без изменений.
// Конечная точка доступна и анонимно: переходы, требующие сеанса,
// уводят на экран AUTH.
package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// Request — навигационное событие.
type Request struct {
	Event string `json:"event" validate:"required,max=50"`
}

// Service описывает интерфейс автомата переходов.
type Service interface {
	Apply(ctx context.Context, userUID string, event view.Event) view.State
}

// Handler обрабатывает навигационные события.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Навигационное событие
// @Description Применяет событие к активному экрану и возвращает новый экран.
// @Tags Session
// @Accept  json
// @Produce  json
// @Param request body Request true "Имя события"
// @Success 200 {object} map[string]any "Активный экран после перехода"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /session/event [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.event"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID := middlewarectx.UserUIDFromContext(r.Context())
	next := h.service.Apply(r.Context(), userUID, view.Event(req.Event))

	log.Info("view event applied",
		slog.String("uid", userUID),
		slog.String("event", req.Event),
		slog.String("view", string(next)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"view": next,
	}))
}
