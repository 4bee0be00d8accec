package animego

import (
	"io"
	"net/http"
	"net/url"
	"strings"
)

// MediaServer truncates a manifest URL after its last path separator,
// yielding the server root the manifest's segments resolve against.
func MediaServer(mediaSrc string) string {
	return mediaSrc[:strings.LastIndex(mediaSrc, "/")+1]
}

// RewritePlaylist qualifies the manifest's own segment references. The
// manifest names its media segments by bare base filename, which only
// resolves relative to the manifest's server root; every occurrence is
// replaced globally because adaptive manifests repeat the base name
// across quality and track declarations. Already qualified occurrences
// are left alone, so rewriting twice changes nothing.
func RewritePlaylist(playlist, mediaSrc string) string {
	server := MediaServer(mediaSrc)
	filename := mediaSrc[len(server):]
	name := filename
	if i := strings.LastIndex(filename, "."); i >= 0 {
		name = filename[:i]
	}
	if name == "" {
		return playlist
	}

	qualified := server + name
	playlist = strings.ReplaceAll(playlist, qualified, name)
	return strings.ReplaceAll(playlist, name, qualified)
}

// GetMpdPlaylistFromLink fetches the manifest behind an already resolved
// embed link and returns it with segment references rewritten. Manifest
// origins require Origin/Referer headers matching the embed host and a
// browser-like user agent.
func (c *Client) GetMpdPlaylistFromLink(embedLink string, episode int, translationID string) (string, error) {
	mediaSrc, err := c.GetMediaSrc(embedLink, episode, translationID)
	if err != nil {
		return "", err
	}

	embedURL, err := url.Parse(embedLink)
	if err != nil {
		return "", &ServiceError{Op: "mpd playlist", Err: err}
	}
	origin := embedURL.Scheme + "://" + embedURL.Host

	req, err := http.NewRequest("GET", mediaSrc, nil)
	if err != nil {
		return "", &ServiceError{Op: "mpd playlist", Err: err}
	}
	req.Header.Set("Origin", origin)
	req.Header.Set("Referer", origin+"/")
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ServiceError{Op: "mpd playlist", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{Op: "mpd playlist", Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Op: "mpd playlist", Err: err}
	}
	return RewritePlaylist(string(body), mediaSrc), nil
}

// GetMpdPlaylist resolves the embed link for a catalog id and returns
// the rewritten manifest for one (episode, dub) pair.
func (c *Client) GetMpdPlaylist(animegoID string, episode int, translationID string) (string, error) {
	embedLink, err := c.GetEmbedLink(animegoID)
	if err != nil {
		return "", err
	}
	return c.GetMpdPlaylistFromLink(embedLink, episode, translationID)
}
