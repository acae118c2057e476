package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"planpilot-backend/internal/handlers"
	"planpilot-backend/internal/middleware"
)

func New(
	originGuard *middleware.OriginGuard,
	chatHandler *handlers.ChatHandler,
	scheduleHandler *handlers.ScheduleHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(originGuard.Middleware)

	// Liveness check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("planpilot backend is running"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
		r.Post("/upload-schedule", scheduleHandler.Upload)
	})

	return r
}
