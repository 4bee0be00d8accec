// Package animego scrapes the animego catalog and resolves playable DASH
// manifests through the aniboom embed provider. The pipeline is
// search -> detail -> episode schedule -> dubbing -> embed -> manifest;
// each stage only receives the identifiers the previous one produced.
package animego

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultMirror  = "animego.me"
	defaultTimeout = 30 * time.Second

	// aniboomProvider is the data-provider id of the aniboom player among
	// the active player entries. It is the only provider this client knows
	// how to resolve into a manifest.
	aniboomProvider = "24"

	// Some manifest origins reject requests without a browser user agent.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	statusSuccess = "success"
)

// Client talks to one catalog mirror. The zero value is not usable; use New.
type Client struct {
	http    *http.Client
	baseURL string
}

// New returns a client for the given mirror domain. An empty mirror or a
// zero timeout falls back to the defaults.
func New(mirror string, timeout time.Duration) *Client {
	if mirror == "" {
		mirror = defaultMirror
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: "https://" + mirror,
	}
}

// NewWithBaseURL returns a client pinned to a fully qualified base URL
// instead of an https mirror domain. Useful against local test servers.
func NewWithBaseURL(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// envelope is the JSON wrapper the catalog uses for its fragment
// endpoints: a status field plus an HTML fragment as a string.
type envelope struct {
	Status  string `json:"status"`
	Content string `json:"content"`
}

// getFragment performs an XHR-style GET against a fragment endpoint and
// decodes the envelope. Interpreting the envelope status is left to the
// caller because the resulting error kind differs per stage.
func (c *Client) getFragment(op, rawURL string, params url.Values, referer string) (*envelope, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Op: op, Status: resp.Status}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &UnexpectedBehaviorError{Op: op, Detail: fmt.Sprintf("envelope is not valid JSON: %v", err)}
	}
	return &env, nil
}

// fragmentDocument parses the HTML fragment carried inside an envelope.
func fragmentDocument(env *envelope) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(env.Content))
}

// idFromLink keeps everything after the last '-' of a detail link. A link
// without a '-' yields the whole string.
func idFromLink(link string) string {
	return link[strings.LastIndex(link, "-")+1:]
}
