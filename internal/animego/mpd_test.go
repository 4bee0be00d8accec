package animego

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaServer(t *testing.T) {
	assert.Equal(t, "https://host/path/", MediaServer("https://host/path/video_1.mpd"))
	assert.Equal(t, "https://host/", MediaServer("https://host/video_1.mpd"))
}

func TestRewritePlaylist(t *testing.T) {
	manifest := strings.Join([]string{
		`<BaseURL>video_1.mpd</BaseURL>`,
		`<SegmentTemplate media="video_1_$Number$.m4s" initialization="video_1_init.m4s"/>`,
		`<SegmentTemplate media="video_1_$Number$.m4s"/>`,
	}, "\n")

	rewritten := RewritePlaylist(manifest, "https://host/path/video_1.mpd")

	// Every bare occurrence across the track declarations is qualified.
	assert.NotContains(t, rewritten, `>video_1.mpd<`)
	assert.Contains(t, rewritten, `<BaseURL>https://host/path/video_1.mpd</BaseURL>`)
	assert.Equal(t, 4, strings.Count(rewritten, "https://host/path/video_1"))

	// A second pass must not touch the already qualified occurrences.
	assert.Equal(t, rewritten, RewritePlaylist(rewritten, "https://host/path/video_1.mpd"))
}

func TestRewritePlaylistNoExtension(t *testing.T) {
	// Base filename without a dot still rewrites by whole-name match.
	out := RewritePlaylist("chunk chunk", "https://host/p/chunk")
	assert.Equal(t, "https://host/p/chunk https://host/p/chunk", out)
}

func TestGetMpdPlaylistFromLink(t *testing.T) {
	manifest := `<MPD><BaseURL>video_1.mpd</BaseURL><S media="video_1_$Number$.m4s"/></MPD>`

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/embed/abc", func(w http.ResponseWriter, r *http.Request) {
		writeEmbedPage(w, server.URL+"/cdn/video_1.mpd")
	})
	mux.HandleFunc("/cdn/video_1.mpd", func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("Origin"), "manifest fetch requires an Origin header")
		require.NotEmpty(t, r.Header.Get("Referer"), "manifest fetch requires a Referer header")
		require.Contains(t, r.Header.Get("User-Agent"), "Mozilla", "manifest fetch requires a browser user agent")
		fmt.Fprint(w, manifest)
	})

	playlist, err := newTestClient(server.URL).GetMpdPlaylistFromLink(server.URL+"/embed/abc", 1, "610")
	require.NoError(t, err)

	want := server.URL + "/cdn/video_1"
	assert.Contains(t, playlist, "<BaseURL>"+want+".mpd</BaseURL>")
	assert.Contains(t, playlist, `media="`+want+`_$Number$.m4s"`)
}

func TestGetMpdPlaylistFromLinkFetchError(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/embed/abc", func(w http.ResponseWriter, r *http.Request) {
		writeEmbedPage(w, server.URL+"/cdn/missing.mpd")
	})
	mux.HandleFunc("/cdn/missing.mpd", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := newTestClient(server.URL).GetMpdPlaylistFromLink(server.URL+"/embed/abc", 1, "610")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
}

func TestGetMpdPlaylistEmbedLinkFailure(t *testing.T) {
	// A failing embed-link resolution aborts the whole chain.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetMpdPlaylist("2477", 1, "610")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
}
