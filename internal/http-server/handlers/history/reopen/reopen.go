// Package reopen реализует HTTP-обработчик повторного открытия результата
// из истории: сохранённый разбор становится текущим, экран переходит на RESULT.
package reopen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/storage"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// Service описывает интерфейс бизнес-логики повторного открытия.
type Service interface {
	Reopen(ctx context.Context, userUID, itemID string) (*models.ScanResult, error)
}

// Handler обрабатывает запросы на повторное открытие результата.
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
// @Summary Повторное открытие результата
// @Description Делает сохранённый результат текущим и возвращает его вместе с экраном RESULT.
// @Tags History
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор записи истории"
// @Success 200 {object} map[string]any "Результат и активный экран"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или просрочен токен"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 422 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /history/{id}/reopen [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.reopen"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	itemID := chi.URLParam(r, "id")
	if err := h.validate.Var(itemID, "required,uuid"); err != nil {
		log.Error("invalid history item id", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid history item id"))
		return
	}

	userUID := middlewarectx.UserUIDFromContext(r.Context())
	result, err := h.service.Reopen(r.Context(), userUID, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrHistoryItemNotFound) {
			log.Info("history item not found", slog.String("id", itemID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("history item not found"))
			return
		}
		log.Error("failed to reopen history item", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reopen history item"))
		return
	}

	log.Info("history item reopened", slog.String("uid", userUID), slog.String("id", itemID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"result": result,
		"view":   view.Result,
	}))
}
