package animego

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// writeEmbedPage renders an embed page whose player element carries the
// two-tier encoded manifest URL.
func writeEmbedPage(w http.ResponseWriter, mediaSrc string) {
	dash, _ := json.Marshal(dashParameters{Src: mediaSrc})
	params, _ := json.Marshal(playerParameters{Dash: string(dash)})
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<html><body><div id="video" data-parameters='%s'></div></body></html>`, params)
}

func TestGetEmbed(t *testing.T) {
	var gotEpisode, gotTranslation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEpisode = r.URL.Query().Get("episode")
		gotTranslation = r.URL.Query().Get("translation")
		if r.Header.Get("Referer") == "" {
			t.Error("embed fetch requires a referer")
		}
		fmt.Fprint(w, "<html><body>embed</body></html>")
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	if _, err := c.GetEmbed(server.URL+"/embed/abc", 3, "610"); err != nil {
		t.Fatalf("GetEmbed() failed: %v", err)
	}
	if gotEpisode != "3" || gotTranslation != "610" {
		t.Errorf("unexpected query: episode=%q translation=%q", gotEpisode, gotTranslation)
	}

	// Episode zero means "not episodic": the parameter must be omitted.
	if _, err := c.GetEmbed(server.URL+"/embed/abc", 0, "610"); err != nil {
		t.Fatalf("GetEmbed() failed: %v", err)
	}
	if gotEpisode != "" {
		t.Errorf("episode parameter must be omitted for movies, got %q", gotEpisode)
	}
}

func TestGetEmbedHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetEmbed(server.URL+"/embed/abc", 1, "610")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestGetMediaSrc(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEmbedPage(w, "https://evie.yagami-light.com/abc/video_1.mpd")
	}))
	defer server.Close()

	src, err := newTestClient(server.URL).GetMediaSrc(server.URL+"/embed/abc", 1, "610")
	if err != nil {
		t.Fatalf("GetMediaSrc() failed: %v", err)
	}
	if src != "https://evie.yagami-light.com/abc/video_1.mpd" {
		t.Errorf("unexpected media src %q", src)
	}
}

func TestGetMediaSrcMissingParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div id="video"></div></body></html>`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetMediaSrc(server.URL+"/embed/abc", 1, "610")
	var unexpected *UnexpectedBehaviorError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedBehaviorError, got %v", err)
	}
}
