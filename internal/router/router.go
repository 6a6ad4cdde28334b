package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	contactHandler *handlers.ContactHandler,
	cvHandler *handlers.CVHandler,
	chatLimiter *middleware.RateLimiter,
	contactLimiter *middleware.RateLimiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. PeerAddr runs first so rate limits ignore forwarded headers.
	r.Use(middleware.PeerAddr)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(chatLimiter.Middleware).Post("/chat", chatHandler.Chat)
		r.With(contactLimiter.Middleware).Post("/contact", contactHandler.Submit)
		r.Get("/cv", cvHandler.Download)
	})

	return r
}
