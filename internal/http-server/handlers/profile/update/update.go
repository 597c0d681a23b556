// Package update реализует HTTP-обработчик редактирования профиля.
//
// Редактируются только пользовательские поля: имя, контакты, аллергены
// и настройки. Тариф и остаток сканирований через профиль не меняются.
package update

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
)

// Request — редактируемая часть профиля.
type Request struct {
	Email      string          `json:"email" validate:"omitempty,max=254"`
	Name       string          `json:"name" validate:"omitempty,max=100"`
	Username   string          `json:"username" validate:"omitempty,max=50"`
	TelegramID string          `json:"telegram_id" validate:"omitempty,max=50"`
	PhotoURL   string          `json:"photo_url" validate:"omitempty,max=500"`
	Allergies  []string        `json:"allergies"`
	Settings   models.Settings `json:"settings"`
}

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	Profile(ctx context.Context, userUID string) (*models.User, error)
	Update(ctx context.Context, user models.User) error
}

// Handler обрабатывает запросы на редактирование профиля.
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
// @Summary Редактирование профиля
// @Description Заменяет редактируемые поля профиля текущего пользователя.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Редактируемые поля профиля"
// @Success 200 {object} map[string]any "Обновлённый профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или просрочен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"

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
	user, err := h.service.Profile(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read profile"))
		return
	}

	user.Email = req.Email
	user.Name = req.Name
	user.Username = req.Username
	user.TelegramID = req.TelegramID
	user.PhotoURL = req.PhotoURL
	user.Allergies = req.Allergies
	user.Settings = req.Settings

	if err := h.service.Update(r.Context(), *user); err != nil {
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update profile"))
		return
	}

	log.Info("profile updated", slog.String("uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
