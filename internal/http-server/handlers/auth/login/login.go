// Package login реализует HTTP-обработчик входа пользователя.
//
// Вход принимает частичный профиль без пароля: любая предоставленная
// идентичность принимается, недостающие поля добиваются значениями
// по умолчанию на уровне бизнес-логики. В ответ возвращаются профиль,
// JWT и активный экран после входа.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// Request — частичный профиль для входа. Все поля опциональны;
// формат почты намеренно не проверяется.
type Request struct {
	Email      string `json:"email" validate:"omitempty,max=254"`
	Name       string `json:"name" validate:"omitempty,max=100"`
	Username   string `json:"username" validate:"omitempty,max=50"`
	TelegramID string `json:"telegram_id" validate:"omitempty,max=50"`
	PhotoURL   string `json:"photo_url" validate:"omitempty,max=500"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, profile models.LoginProfile) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы входа.
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
// @Summary Вход пользователя
// @Description Принимает частичный профиль без пароля, создаёт сеанс и возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Частичный профиль пользователя"
// @Success 200 {object} map[string]any "Профиль, токен и активный экран"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, token, err := h.service.Login(r.Context(), models.LoginProfile{
		Email:      req.Email,
		Name:       req.Name,
		Username:   req.Username,
		TelegramID: req.TelegramID,
		PhotoURL:   req.PhotoURL,
	})
	if err != nil {
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create session"))
		return
	}

	log.Info("login success", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":  user,
		"token": token,
		"view":  view.Dashboard,
	}))
}
