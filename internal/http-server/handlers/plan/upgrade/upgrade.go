// Package upgrade реализует HTTP-обработчик смены тарифного плана.
//
// Конечная точка доступна и без сеанса: анонимный запрос не меняет тариф,
// а переводит активный экран на AUTH, чтобы пользователь сначала вошёл.
package upgrade

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
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// Request — запрос на смену тарифа.
type Request struct {
	Plan string `json:"plan" validate:"required,oneof=FREE PRO ULTRA"`
}

// Service описывает интерфейс бизнес-логики смены тарифа.
type Service interface {
	Upgrade(ctx context.Context, userUID string, plan models.Plan) (view.State, error)
}

// Handler обрабатывает запросы на смену тарифа.
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
// @Summary Смена тарифного плана
// @Description Устанавливает тариф после имитации биллингового запроса. Без сеанса возвращает экран AUTH.
// @Tags Plan
// @Accept  json
// @Produce  json
// @Param request body Request true "Целевой тариф"
// @Success 200 {object} map[string]any "Тариф и активный экран"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /plan/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.upgrade"

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
	next, err := h.service.Upgrade(r.Context(), userUID, models.Plan(req.Plan))
	if err != nil {
		log.Error("failed to upgrade plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upgrade plan"))
		return
	}

	log.Info("upgrade handled", slog.String("uid", userUID), slog.String("view", string(next)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plan": req.Plan,
		"view": next,
	}))
}
