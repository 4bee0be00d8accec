package animego

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TMKSpace/anime-tmkspace/internal/models"
)

// Rows arrive deliberately out of order; the stage must sort by index.
const scheduleFixture = `
<div class="row m-0">
  <div><meta content="2"></div>
  <div>Вторая серия</div>
  <div><span data-label="12 янв. 2024"></span></div>
  <div><span class="released-icon"></span></div>
</div>
<div class="row m-0">
  <div><meta content="1"></div>
  <div>Первая серия</div>
  <div><span data-label="5 янв. 2024"></span></div>
  <div><span class="released-icon"></span></div>
</div>
<div class="row m-0">
  <div><meta content="3"></div>
  <div>Третья серия</div>
  <div><span data-label="19 янв. 2024"></span></div>
  <div></div>
</div>`

func TestGetEpisodes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/anime/test-1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") != "episodeSchedule" {
			t.Errorf("expected type=episodeSchedule, got %q", r.URL.Query().Get("type"))
		}
		if r.URL.Query().Get("episodeNumber") != "99999" {
			t.Errorf("expected full-schedule sentinel, got %q", r.URL.Query().Get("episodeNumber"))
		}
		writeEnvelope(w, "success", scheduleFixture)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	episodes, err := newTestClient(server.URL).GetEpisodes(server.URL + "/anime/test-1")
	if err != nil {
		t.Fatalf("GetEpisodes() failed: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("expected 3 episodes, got %d", len(episodes))
	}

	for i, ep := range episodes {
		if ep.Index != i+1 {
			t.Errorf("episode %d has index %d, list must be sorted ascending", i, ep.Index)
		}
	}

	first := episodes[0]
	if first.Title != "Первая серия" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.AirDate != "5 янв. 2024" {
		t.Errorf("unexpected air date %q", first.AirDate)
	}
	if first.Status != models.EpisodeReleased || !first.Released {
		t.Errorf("episode 1 should be released, got %+v", first)
	}
	if last := episodes[2]; last.Status != models.EpisodeAnnounced || last.Released {
		t.Errorf("episode 3 should be announced, got %+v", last)
	}
}

func TestGetEpisodesNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/anime/test-1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "error", "")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := newTestClient(server.URL).GetEpisodes(server.URL + "/anime/test-1")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}
