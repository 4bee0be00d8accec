package animego

import (
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return NewWithBaseURL(baseURL, 20*time.Second)
}

func TestIDFromLink(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://animego.me/anime/foo-bar-2477", "2477"},
		{"https://animego.me/anime/solo-leveling-s1-2477", "2477"},
		{"2477", "2477"},
		{"nodash", "nodash"},
		{"trailing-", ""},
	}
	for _, tc := range cases {
		if got := idFromLink(tc.link); got != tc.want {
			t.Errorf("idFromLink(%q) = %q, want %q", tc.link, got, tc.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	c := New("", 0)
	if c.baseURL != "https://"+defaultMirror {
		t.Errorf("default base URL = %q", c.baseURL)
	}
	if c.http.Timeout != defaultTimeout {
		t.Errorf("default timeout = %v", c.http.Timeout)
	}

	c = New("animego.org", 10*time.Second)
	if c.baseURL != "https://animego.org" {
		t.Errorf("base URL = %q", c.baseURL)
	}

	c = NewWithBaseURL("http://127.0.0.1:8080/", 0)
	if c.baseURL != "http://127.0.0.1:8080" {
		t.Errorf("pinned base URL = %q", c.baseURL)
	}
}
