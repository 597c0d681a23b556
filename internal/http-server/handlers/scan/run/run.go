// Package run реализует HTTP-обработчик запуска сканирования.
//
// Принимает изображение в base64 и/или текст состава, прогоняет пайплайн
// анализа и возвращает готовый результат вместе с новым активным экраном.
// Ошибки пайплайна переводятся в сообщения, пригодные для показа пользователю.
package run

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/http-server/response"
	"github.com/purescan-ai/purescan-backend/internal/lib/sl"
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/services/scan"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

// Сообщения об ошибках, которые показываются пользователю как есть.
const (
	msgAuditFailed   = "Ошибка при разборе состава. Попробуйте загрузить более четкое фото."
	msgQuotaExceeded = "Лимит бесплатных сканирований исчерпан. Оформите подписку, чтобы продолжить."
)

// Request — входные данные сканирования. Достаточно одного из полей;
// изображение имеет приоритет над текстом.
type Request struct {
	ImageBase64 string `json:"image_base64" validate:"omitempty,base64"`
	Ingredients string `json:"ingredients" validate:"omitempty,max=10000"`
}

// Scanner описывает интерфейс пайплайна сканирования.
type Scanner interface {
	Scan(ctx context.Context, userUID string, input models.ScanInput) (*models.ScanResult, error)
}

// SessionService проводит активный экран через автомат переходов.
type SessionService interface {
	Apply(ctx context.Context, userUID string, event view.Event) view.State
}

// Handler обрабатывает запросы на запуск сканирования.
type Handler struct {
	log      *slog.Logger
	scanner  Scanner
	sessions SessionService
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, scanner Scanner, sessions SessionService) *Handler {
	return &Handler{
		log:      log,
		scanner:  scanner,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запуск сканирования
// @Description Анализирует изображение или текст состава и возвращает результат аудита.
// @Tags Scan
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Изображение в base64 и/или текст состава"
// @Success 200 {object} map[string]any "Результат сканирования и активный экран"
// @Failure 400 {object} response.ErrorResponse "Пустой ввод или некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или просрочен токен"
// @Failure 403 {object} response.ErrorResponse "Квота бесплатных сканирований исчерпана"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Анализ не удался"
// @Router /scan [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.scan.run"

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
	result, err := h.scanner.Scan(r.Context(), userUID, models.ScanInput{
		ImageBase64: req.ImageBase64,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		switch {
		case errors.Is(err, scan.ErrEmptyInput):
			log.Error("empty scan input")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("provide an image or ingredients text"))
		case errors.Is(err, scan.ErrQuotaExceeded):
			log.Info("scan quota exceeded", slog.String("uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(msgQuotaExceeded))
		case errors.Is(err, scan.ErrAuditFailed):
			log.Error("audit failed", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(msgAuditFailed))
		default:
			log.Error("scan failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not complete scan"))
		}
		return
	}

	next := h.sessions.Apply(r.Context(), userUID, view.EventScanComplete)

	log.Info("scan handled",
		slog.String("uid", userUID),
		slog.String("result_id", result.ID),
		slog.String("status", result.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"result": result,
		"view":   next,
	}))
}
