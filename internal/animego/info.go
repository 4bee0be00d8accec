package animego

import (
	"errors"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TMKSpace/anime-tmkspace/internal/models"
	"github.com/TMKSpace/anime-tmkspace/internal/scrape"
)

// detailFields maps scalar record fields to their label on the detail
// page. Markup drift means editing this table, not the extraction code.
var detailFields = scrape.Table{
	"status":         {Label: "Статус"},
	"source":         {Label: "Первоисточник"},
	"season":         {Label: "Сезон"},
	"releaseDate":    {Label: "Выпуск", Find: "span"},
	"type":           {Label: "Тип"},
	"mpaa":           {Label: "Рейтинг MPAA"},
	"ageRestriction": {Label: "Возрастные ограничения"},
	"duration":       {Label: "Длительность"},
}

// AnimeInfo fetches a detail page and assembles the full record. Missing
// cosmetic fields degrade to empty values; only the documented stage
// failures abort. The episode schedule sub-lookup is mandatory, while a
// blocked player only clears the translation list; metadata stays
// useful even when playback is withheld.
func (c *Client) AnimeInfo(link string) (*models.Anime, error) {
	resp, err := c.http.Get(link)
	if err != nil {
		return nil, &ServiceError{Op: "anime info", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Op: "anime info", Status: resp.Status}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	anime := &models.Anime{
		Link:      link,
		AnimegoID: idFromLink(link),
		Title:     scrape.Text(doc.Find("div.anime-title h1")),
	}

	doc.Find("div.anime-synonyms li").Each(func(_ int, syn *goquery.Selection) {
		anime.OtherTitles = append(anime.OtherTitles, scrape.Text(syn))
	})

	// The first image is the poster; its src carries the mirror-relative
	// path starting at "/upload".
	if src := scrape.Attr(doc.Find("img").First(), "src"); src != "" {
		if i := strings.Index(src, "/upload"); i >= 0 {
			src = src[i:]
		}
		anime.Poster = c.baseURL + src
	}

	info := doc.Find("div.anime-info dl")

	anime.Status = detailFields.Lookup(info, "status")
	anime.Source = detailFields.Lookup(info, "source")
	anime.Season = detailFields.Lookup(info, "season")
	anime.ReleaseDate = detailFields.Lookup(info, "releaseDate")
	anime.Type = detailFields.Lookup(info, "type")
	anime.Duration = detailFields.Lookup(info, "duration")
	anime.Ratings = models.Ratings{
		MPAA:           detailFields.Lookup(info, "mpaa"),
		AgeRestriction: detailFields.Lookup(info, "ageRestriction"),
	}

	scrape.Definition(info, "Жанр").Find("a").Each(func(_ int, a *goquery.Selection) {
		anime.Genres = append(anime.Genres, scrape.Text(a))
	})

	// Only airing titles carry the next-episode section; an empty section
	// means the field is omitted entirely.
	if next := scrape.Definition(info, "Следующий эпизод"); scrape.Text(next) != "" {
		first := next.Find("span").First()
		anime.NextEpisode = &models.NextEpisode{
			Date:    scrape.Text(first),
			In:      scrape.Attr(first, "data-title"),
			Episode: scrape.Text(next.Find("span.d-none")),
		}
	}

	// "current / total" counter; total defaults to current when the page
	// advertises no separate total.
	episodes := scrape.Definition(info, "Эпизоды")
	current := leadingInt(strings.Split(scrape.Text(episodes), "/")[0])
	total := leadingInt(scrape.Text(episodes.Find("span")))
	if total == 0 {
		total = current
	}
	anime.Episodes = models.EpisodeCount{Current: current, Total: total}

	studio := scrape.Definition(info, "Студия").Find("a").First()
	anime.Studio = models.PersonRef{
		Name: scrape.Text(studio),
		Link: scrape.Attr(studio, "href"),
	}

	basedOn := scrape.Definition(info, "Снят по").Find("a").First()
	anime.BasedOn = models.Reference{
		Type:  anime.Source, // same classification, surfaced twice
		Title: scrape.Text(basedOn),
		Link:  scrape.Attr(basedOn, "href"),
	}

	scrape.Definition(info, "Главные герои").Find("div").Each(func(_ int, block *goquery.Selection) {
		char := block.Find("a").First()
		va := block.Find("a.text-link-gray")
		anime.MainCharacters = append(anime.MainCharacters, models.Character{
			Name: scrape.Text(char),
			Link: scrape.Attr(char, "href"),
			VoiceActor: models.PersonRef{
				Name: scrape.Text(va),
				Link: scrape.Attr(va, "href"),
			},
		})
	})

	anime.Description = scrape.Text(doc.Find("div.description"))

	doc.Find("a.screenshots-item").Each(func(_ int, shot *goquery.Selection) {
		if href := scrape.Attr(shot, "href"); href != "" {
			anime.Screenshots = append(anime.Screenshots, c.baseURL+href)
		}
	})

	if video := doc.Find("div.video-block"); video.Length() > 0 {
		anime.Trailer = scrape.Attr(video.Find("a.video-item"), "href")
	}

	episodesList, err := c.GetEpisodes(link)
	if err != nil {
		return nil, err
	}
	anime.EpisodesList = episodesList

	translations, err := c.GetTranslations(anime.AnimegoID)
	if err != nil {
		var blocked *ContentBlockedError
		if !errors.As(err, &blocked) {
			return nil, err
		}
		translations = []models.Translation{}
	}
	anime.Translations = translations

	return anime, nil
}

// leadingInt parses the leading digit run of s, ignoring whatever
// follows. Returns 0 when s does not start with a digit.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
