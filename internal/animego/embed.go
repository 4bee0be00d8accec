package animego

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TMKSpace/anime-tmkspace/internal/scrape"
)

// GetEmbed fetches the embed page for a (episode, dub) selection. The
// dub id is always passed; the episode index only when non-zero, because
// zero means the title is not episodic (a movie).
func (c *Client) GetEmbed(embedLink string, episode int, translationID string) (string, error) {
	req, err := http.NewRequest("GET", embedLink, nil)
	if err != nil {
		return "", err
	}
	q := req.URL.Query()
	q.Set("translation", translationID)
	if episode != 0 {
		q.Set("episode", strconv.Itoa(episode))
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Referer", c.baseURL+"/")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ServiceError{Op: "embed", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{Op: "embed", Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Op: "embed", Err: err}
	}
	return string(body), nil
}

// playerParameters is the first decode tier: the JSON blob stored in the
// player element's data-parameters attribute. Its dash field is itself
// an encoded JSON document, not an object.
type playerParameters struct {
	Dash string `json:"dash"`
}

// dashParameters is the second decode tier, describing the adaptive
// streaming track.
type dashParameters struct {
	Src string `json:"src"`
}

// GetMediaSrc recovers the DASH manifest URL from the embed page. The
// URL sits two JSON tiers deep inside the player element's
// data-parameters attribute.
func (c *Client) GetMediaSrc(embedLink string, episode int, translationID string) (string, error) {
	embed, err := c.GetEmbed(embedLink, episode, translationID)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(embed))
	if err != nil {
		return "", err
	}

	raw := scrape.Attr(doc.Find("#video"), "data-parameters")
	if raw == "" {
		return "", &UnexpectedBehaviorError{Op: "media src", Detail: "player element has no data-parameters"}
	}

	var params playerParameters
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return "", &UnexpectedBehaviorError{Op: "media src", Detail: fmt.Sprintf("bad data-parameters: %v", err)}
	}
	var dash dashParameters
	if err := json.Unmarshal([]byte(params.Dash), &dash); err != nil {
		return "", &UnexpectedBehaviorError{Op: "media src", Detail: fmt.Sprintf("bad dash parameters: %v", err)}
	}
	return dash.Src, nil
}
