// Package logout реализует HTTP-обработчик выхода из сеанса.
// Выход удаляет пользователя вместе с историей и сеансовыми ключами.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, userUID string) error
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход из сеанса
// @Description Удаляет пользователя, его историю и сеансовые данные.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Активный экран после выхода"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или просрочен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := middlewarectx.UserUIDFromContext(r.Context())
	if err := h.service.Logout(r.Context(), userUID); err != nil {
		log.Error("logout failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not close session"))
		return
	}

	log.Info("logout success", slog.String("uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"view": view.Landing,
	}))
}
