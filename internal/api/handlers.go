package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/TMKSpace/anime-tmkspace/internal/core"
	"github.com/TMKSpace/anime-tmkspace/internal/jobs"
	"github.com/TMKSpace/anime-tmkspace/internal/poster"
	"github.com/TMKSpace/anime-tmkspace/internal/watchlist"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": core.Version})
}

// handleSearch runs the lightweight catalog search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'q' query parameter")
		return
	}

	results, err := s.app.Parser().FastSearch(query)
	if err != nil {
		respondWithResolverError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, results)
}

// handleAnimeInfo resolves the full detail record for a catalog link.
// With preview=true the poster is replaced by a small inline data URI.
func (s *Server) handleAnimeInfo(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'link' query parameter")
		return
	}

	anime, err := s.app.Parser().AnimeInfo(link)
	if err != nil {
		respondWithResolverError(w, err)
		return
	}

	if r.URL.Query().Get("preview") == "true" && anime.Poster != "" {
		preview, err := poster.PreviewFromURL(http.DefaultClient, anime.Poster)
		if err != nil {
			log.Printf("Poster preview for %q failed: %v", anime.Title, err)
		} else {
			anime.Poster = preview
		}
	}
	RespondWithJSON(w, http.StatusOK, anime)
}

func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'link' query parameter")
		return
	}

	episodes, err := s.app.Parser().GetEpisodes(link)
	if err != nil {
		respondWithResolverError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, episodes)
}

func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	animegoID := chi.URLParam(r, "animegoID")

	translations, err := s.app.Parser().GetTranslations(animegoID)
	if err != nil {
		respondWithResolverError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, translations)
}

// handlePlaylist resolves one (episode, translation) pair into a
// self-contained DASH manifest and serves it as raw text.
func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	animegoID := chi.URLParam(r, "animegoID")

	translation := r.URL.Query().Get("translation")
	if translation == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'translation' query parameter")
		return
	}
	// Episode zero (or absent) means the title is not episodic.
	episode, err := strconv.Atoi(r.URL.Query().Get("episode"))
	if err != nil {
		episode = 0
	}

	playlist, err := s.app.Parser().GetMpdPlaylist(animegoID, episode, translation)
	if err != nil {
		respondWithResolverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/dash+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", animegoID+".mpd"))
	w.Write([]byte(playlist))
}

func (s *Server) handleListWatchlist(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Watchlist().All())
}

func (s *Server) handleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var entry watchlist.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.AnimegoID == "" || entry.Link == "" {
		RespondWithError(w, http.StatusBadRequest, "animego_id and link are required")
		return
	}

	s.app.Watchlist().Add(entry)
	RespondWithJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	animegoID := chi.URLParam(r, "animegoID")
	if !s.app.Watchlist().Remove(animegoID) {
		RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// handleRefreshWatchlist triggers the schedule refresh job immediately
// instead of waiting for the next scheduler tick.
func (s *Server) handleRefreshWatchlist(w http.ResponseWriter, r *http.Request) {
	if err := s.app.JobManager().RunJob(jobs.RefreshJobID, s.app); err != nil {
		RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) handleJobsStatus(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.JobManager().GetStatus())
}
