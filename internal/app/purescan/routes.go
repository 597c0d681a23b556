// Package purescan предоставляет маршруты для основного приложения.
package purescan

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/purescan-ai/purescan-backend/docs"
	"github.com/purescan-ai/purescan-backend/internal/http-server/handlers/auth/login"
	"github.com/purescan-ai/purescan-backend/internal/http-server/handlers/auth/logout"
	"github.com/purescan-ai/purescan-backend/internal/http-server/handlers/health"
	historylist "github.com/purescan-ai/purescan-backend/internal/http-server/handlers/history/list"
	"github.com/purescan-ai/purescan-backend/internal/http-server/handlers/history/reopen"
	planupgrade "github.com/purescan-ai/purescan-backend/internal/http-server/handlers/plan/upgrade"
	profileget "github.com/purescan-ai/purescan-backend/internal/http-server/handlers/profile/get"
	profileupdate "github.com/purescan-ai/purescan-backend/internal/http-server/handlers/profile/update"
	scanprogress "github.com/purescan-ai/purescan-backend/internal/http-server/handlers/scan/progress"
	scanrun "github.com/purescan-ai/purescan-backend/internal/http-server/handlers/scan/run"
	sessionevent "github.com/purescan-ai/purescan-backend/internal/http-server/handlers/session/event"
	"github.com/purescan-ai/purescan-backend/internal/http-server/handlers/session/viewstate"
	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/lib/jwt"
	historyservice "github.com/purescan-ai/purescan-backend/internal/services/history"
	scanservice "github.com/purescan-ai/purescan-backend/internal/services/scan"
	sessionservice "github.com/purescan-ai/purescan-backend/internal/services/session"
	"github.com/purescan-ai/purescan-backend/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *storage.Storage,
	sessionService *sessionservice.Service, historyService *historyservice.Service, scanService *scanservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки: токен учитывается, но не обязателен
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(jwtMaker, logger))
			r.Post("/login", login.New(logger, sessionService).ServeHTTP)
			r.Post("/plan/upgrade", planupgrade.New(logger, sessionService).ServeHTTP)
			r.Get("/session/view", viewstate.New(logger, sessionService).ServeHTTP)
			r.Post("/session/event", sessionevent.New(logger, sessionService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, sessionService).ServeHTTP)
			r.Get("/profile", profileget.New(logger, sessionService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, sessionService).ServeHTTP)
			r.Post("/scan", scanrun.New(logger, scanService, sessionService).ServeHTTP)
			r.Get("/scan/progress", scanprogress.New(logger, scanService).ServeHTTP)
			r.Get("/history", historylist.New(logger, historyService).ServeHTTP)
			r.Post("/history/{id}/reopen", reopen.New(logger, historyService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
