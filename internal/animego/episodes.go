package animego

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/TMKSpace/anime-tmkspace/internal/models"
	"github.com/TMKSpace/anime-tmkspace/internal/scrape"
)

// GetEpisodes fetches the full episode schedule for a detail link. The
// oversized episodeNumber sentinel makes the site return the whole
// schedule instead of a single page. Rows are not guaranteed to arrive
// sorted, so the list is ordered by index before return.
func (c *Client) GetEpisodes(link string) ([]models.Episode, error) {
	params := url.Values{}
	params.Set("type", "episodeSchedule")
	params.Set("episodeNumber", "99999")

	env, err := c.getFragment("episode schedule", link, params, "")
	if err != nil {
		return nil, err
	}
	if env.Status != statusSuccess {
		return nil, fmt.Errorf("episode schedule for %s: %w", link, ErrNoResults)
	}

	doc, err := fragmentDocument(env)
	if err != nil {
		return nil, err
	}

	var episodes []models.Episode
	doc.Find("div.row.m-0").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("div")

		ep := models.Episode{Index: -1}
		if content := scrape.Attr(cells.Eq(0).Find("meta"), "content"); content != "" {
			if n, err := strconv.Atoi(content); err == nil {
				ep.Index = n
			}
		}
		ep.Title = scrape.Text(cells.Eq(1))
		ep.AirDate = scrape.Attr(cells.Eq(2).Find("span"), "data-label")
		// A marker element in the last cell means the episode is out.
		if cells.Eq(3).Find("span").Length() > 0 {
			ep.Status = models.EpisodeReleased
			ep.Released = true
		} else {
			ep.Status = models.EpisodeAnnounced
		}
		episodes = append(episodes, ep)
	})

	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].Index < episodes[j].Index
	})
	return episodes, nil
}
