package animego

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TMKSpace/anime-tmkspace/internal/models"
	"github.com/TMKSpace/anime-tmkspace/internal/scrape"
)

// playerFragment fetches the player fragment for a catalog id.
func (c *Client) playerFragment(op, animegoID string) (*envelope, error) {
	params := url.Values{}
	params.Set("_allow", "true")
	return c.getFragment(op, fmt.Sprintf("%s/anime/%s/player", c.baseURL, animegoID), params, "")
}

// contentBlocked returns a ContentBlockedError when the fragment carries
// the block notice instead of player data.
func contentBlocked(doc *goquery.Document, animegoID string) error {
	if doc.Find("div.player-blocked").Length() == 0 {
		return nil
	}
	reason := scrape.Text(doc.Find("div.h5"))
	if reason == "" {
		reason = "unknown"
	}
	return &ContentBlockedError{AnimegoID: animegoID, Reason: reason}
}

// GetTranslations lists the dubbing tracks playable through the aniboom
// provider. The fragment advertises two independent lists: dub names
// keyed by a dubbing id, and active player entries keyed by provider and
// the same dubbing id. Only dubs with both a non-empty name and a
// matching aniboom entry survive the join; the rest are advertised but
// not currently playable and are dropped silently.
func (c *Client) GetTranslations(animegoID string) ([]models.Translation, error) {
	env, err := c.playerFragment("translations", animegoID)
	if err != nil {
		return nil, err
	}
	doc, err := fragmentDocument(env)
	if err != nil {
		return nil, err
	}
	if err := contentBlocked(doc, animegoID); err != nil {
		return nil, err
	}

	names := make(map[string]string) // dubbing id -> display name
	var order []string               // page order of first appearance
	doc.Find("#video-dubbing span.video-player-toggle-item").Each(func(_ int, s *goquery.Selection) {
		key := scrape.Attr(s, "data-dubbing")
		if _, seen := names[key]; !seen {
			order = append(order, key)
		}
		names[key] = scrape.Text(s)
	})

	ids := make(map[string]string) // dubbing id -> playback id
	doc.Find("#video-players span.video-player-toggle-item").Each(func(_ int, s *goquery.Selection) {
		if scrape.Attr(s, "data-provider") != aniboomProvider {
			return
		}
		key := scrape.Attr(s, "data-provide-dubbing")
		player := scrape.Attr(s, "data-player")
		// The playback id is the value of the last query parameter of the
		// raw player reference.
		ids[key] = player[strings.LastIndex(player, "=")+1:]
	})

	var res []models.Translation
	for _, key := range order {
		if names[key] != "" && ids[key] != "" {
			res = append(res, models.Translation{Name: names[key], ID: ids[key]})
		}
	}
	return res, nil
}

// GetEmbedLink resolves the aniboom player reference for a catalog id.
// The raw reference is protocol-relative and carries a query string;
// both are normalized away before return.
func (c *Client) GetEmbedLink(animegoID string) (string, error) {
	env, err := c.playerFragment("embed link", animegoID)
	if err != nil {
		return "", err
	}
	if env.Status != statusSuccess {
		return "", &UnexpectedBehaviorError{
			Op:     "embed link",
			Detail: fmt.Sprintf("envelope status %q", env.Status),
		}
	}
	doc, err := fragmentDocument(env)
	if err != nil {
		return "", err
	}
	if err := contentBlocked(doc, animegoID); err != nil {
		return "", err
	}

	selector := fmt.Sprintf(`#video-players span.video-player-toggle-item[data-provider=%q]`, aniboomProvider)
	raw := scrape.Attr(doc.Find(selector), "data-player")
	if raw == "" {
		return "", fmt.Errorf("embed link for id %s: %w", animegoID, ErrNoResults)
	}

	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[:i]
	}
	return "https:" + raw, nil
}
