package animego

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/TMKSpace/anime-tmkspace/internal/models"
	"github.com/TMKSpace/anime-tmkspace/internal/scrape"
)

// FastSearch queries the catalog's internal search endpoint with the
// compact ("small") result shape and parses each result block into a
// SearchResult. A single attempt, no retries.
func (c *Client) FastSearch(query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("type", "small")
	params.Set("q", query)

	env, err := c.getFragment("fast search", c.baseURL+"/search/all", params, c.baseURL+"/")
	if err != nil {
		return nil, err
	}
	if env.Status != statusSuccess {
		return nil, &ServiceError{Op: fmt.Sprintf("fast search for %q", query), Status: env.Status}
	}

	doc, err := fragmentDocument(env)
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	doc.Find("div.result-search-anime div.result-search-item").Each(func(_ int, s *goquery.Selection) {
		r := models.SearchResult{
			Title:      scrape.Text(s.Find("h5")),
			Year:       scrape.Text(s.Find("span.anime-year")),
			OtherTitle: scrape.Text(s.Find("div.text-truncate")),
			Type:       scrape.Text(s.Find(`a[href*="anime/type"]`)),
			Link:       c.baseURL + scrape.Attr(s.Find("h5 a"), "href"),
		}
		r.AnimegoID = idFromLink(r.Link)
		results = append(results, r)
	})
	return results, nil
}

// Search runs FastSearch and fetches the full detail record for every
// hit, strictly sequentially and in result order. A failing detail
// lookup aborts the remaining batch rather than being swallowed.
func (c *Client) Search(query string) ([]*models.Anime, error) {
	hits, err := c.FastSearch(query)
	if err != nil {
		return nil, err
	}

	res := make([]*models.Anime, 0, len(hits))
	for _, hit := range hits {
		anime, err := c.AnimeInfo(hit.Link)
		if err != nil {
			return nil, fmt.Errorf("detail lookup for %q: %w", hit.Title, err)
		}
		res = append(res, anime)
	}
	return res, nil
}
