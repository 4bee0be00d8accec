// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"net/http"
	"time"

	"github.com/TMKSpace/anime-tmkspace/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds the dependencies for our API.
type Server struct {
	app *core.App
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{app: app}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/version", s.handleGetVersion)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)

		r.Route("/anime", func(r chi.Router) {
			r.Get("/info", s.handleAnimeInfo)
			r.Get("/episodes", s.handleEpisodes)
			r.Get("/{animegoID}/translations", s.handleTranslations)
			r.Get("/{animegoID}/playlist", s.handlePlaylist)
		})

		r.Get("/watchlist", s.handleListWatchlist)
		r.Post("/watchlist", s.handleAddToWatchlist)
		r.Post("/watchlist/refresh", s.handleRefreshWatchlist)
		r.Delete("/watchlist/{animegoID}", s.handleRemoveFromWatchlist)

		r.Get("/jobs/status", s.handleJobsStatus)
	})

	// Websocket endpoint for progress updates.
	r.Get("/ws/progress", s.app.WsHub().ServeWs)

	return r
}
