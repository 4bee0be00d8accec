// This file defines the core data structures (models) for the resolver.
// These structs represent search results, anime records, episodes and
// dubbing tracks as scraped from the catalog site.

package models

// Episode status values. The schedule fragment marks released episodes
// with an icon element; everything else is an announcement.
const (
	EpisodeReleased  = "released"
	EpisodeAnnounced = "announced"
)

// SearchResult is a lightweight catalog entry returned by the fast
// search endpoint. The AnimegoID is the trailing numeric suffix of Link.
type SearchResult struct {
	Title      string `json:"title"`
	Year       string `json:"year"`
	OtherTitle string `json:"other_title"`
	Type       string `json:"type"`
	Link       string `json:"link"`
	AnimegoID  string `json:"animego_id"`
}

// Episode is one row of the episode schedule.
type Episode struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	AirDate  string `json:"air_date"`
	Status   string `json:"status"`
	Released bool   `json:"released"`
}

// Translation is a dubbing track that is playable through the supported
// embed provider. ID is the provider-side playback identifier.
type Translation struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// PersonRef is a named link (studio, character, voice actor).
type PersonRef struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Character is a main character with its voice actor.
type Character struct {
	Name       string    `json:"name"`
	Link       string    `json:"link"`
	VoiceActor PersonRef `json:"voice_actor"`
}

// NextEpisode describes the upcoming episode section of the detail page.
// It is only present while a series is airing.
type NextEpisode struct {
	Date    string `json:"date"`
	In      string `json:"in"`
	Episode string `json:"episode"`
}

// EpisodeCount holds the "current / total" counter from the detail page.
// Total falls back to Current when the page advertises no separate total.
type EpisodeCount struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Ratings groups the age classification fields.
type Ratings struct {
	MPAA           string `json:"mpaa"`
	AgeRestriction string `json:"age_restriction"`
}

// Reference points at the work the anime is based on. Type mirrors the
// Source field of the parent record.
type Reference struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Anime is the aggregate detail record. It is created once per detail
// lookup and never mutated afterwards; callers treat it as a value.
type Anime struct {
	Title       string   `json:"title"`
	OtherTitles []string `json:"other_titles"`
	AnimegoID   string   `json:"animego_id"`
	Link        string   `json:"link"`

	NextEpisode  *NextEpisode `json:"next_episode,omitempty"`
	Episodes     EpisodeCount `json:"episodes"`
	EpisodesList []Episode    `json:"episodes_list"`

	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Genres      []string  `json:"genres"`
	Source      string    `json:"source"`
	Season      string    `json:"season"`
	ReleaseDate string    `json:"release_date"`
	Studio      PersonRef `json:"studio"`
	Ratings     Ratings   `json:"ratings"`
	Duration    string    `json:"duration"`
	BasedOn     Reference `json:"based_on"`

	Description    string        `json:"description"`
	MainCharacters []Character   `json:"main_characters"`
	Translations   []Translation `json:"translations"`
	Screenshots    []string      `json:"screenshots"`
	Poster         string        `json:"poster"`
	Trailer        string        `json:"trailer,omitempty"`
}
