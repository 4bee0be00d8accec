// Package downloader fans manifest fetches for every (dub, episode) pair
// of a title out over a bounded worker pool and hands the rewritten
// manifests to a sink.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/TMKSpace/anime-tmkspace/internal/animego"
	"github.com/TMKSpace/anime-tmkspace/internal/models"
)

// Resolver is the slice of the parser client the dumper needs. Carved out
// as an interface so tests can substitute a fake that skips the real
// embed-host round trips.
type Resolver interface {
	GetEmbedLink(animegoID string) (string, error)
	GetMpdPlaylistFromLink(embedLink string, episode int, translationID string) (string, error)
}

// Broadcaster receives progress updates. The websocket hub satisfies it.
type Broadcaster interface {
	BroadcastJSON(payload interface{})
}

// Job is one (dub, episode) manifest fetch.
type Job struct {
	Translation models.Translation
	Episode     models.Episode
}

// Result reports the outcome of one job. Results come back in job order
// regardless of which worker finished first.
type Result struct {
	Job  Job
	Path string
	Err  error
}

// Dumper drives the batch resolution of a whole title.
type Dumper struct {
	Resolver Resolver
	Sink     Sink
	Hub      Broadcaster // optional
	Workers  int
	// ContinueOnError keeps the pool running after a job fails instead of
	// cancelling the remaining jobs. Failed jobs are reported per Result
	// either way.
	ContinueOnError bool
}

// DumpAll resolves the embed link for the title once, then fetches the
// manifest for every translation × episode pair through the worker pool.
// Titles without an episode list (movies) get a single pseudo-episode
// with index zero. The returned slice always has one entry per job; the
// returned error is the first failure when the abort policy is in effect.
func (d *Dumper) DumpAll(ctx context.Context, anime *models.Anime) ([]Result, error) {
	embedLink, err := d.Resolver.GetEmbedLink(anime.AnimegoID)
	if err != nil {
		return nil, fmt.Errorf("resolve embed link for %q: %w", anime.Title, err)
	}

	episodes := anime.EpisodesList
	if len(episodes) == 0 {
		episodes = []models.Episode{{Index: 0}}
	}

	jobs := make([]Job, 0, len(anime.Translations)*len(episodes))
	for _, tr := range anime.Translations {
		for _, ep := range episodes {
			jobs = append(jobs, Job{Translation: tr, Episode: ep})
		}
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	workers := d.Workers
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(jobs))
	jobCh := make(chan int)
	var completed atomic.Int64

	var errMu sync.Mutex
	var firstErr error

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobCh {
				job := jobs[i]
				path, err := d.processJob(ctx, anime, embedLink, job)
				results[i] = Result{Job: job, Path: path, Err: err}
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					if !d.ContinueOnError {
						cancel()
					}
				}
				d.broadcast(anime, job, int(completed.Add(1)), len(jobs), err)
			}
		}()
	}

feed:
	for i := range jobs {
		select {
		case jobCh <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobCh)
	wg.Wait()

	// Jobs never handed to a worker still need a result entry.
	for i := range results {
		if results[i].Job == (Job{}) {
			results[i] = Result{Job: jobs[i], Err: ctx.Err()}
		}
	}

	if firstErr != nil && !d.ContinueOnError {
		return results, firstErr
	}
	return results, nil
}

func (d *Dumper) processJob(ctx context.Context, anime *models.Anime, embedLink string, job Job) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	playlist, err := d.Resolver.GetMpdPlaylistFromLink(embedLink, job.Episode.Index, job.Translation.ID)
	if err != nil && isTransient(err) {
		log.Printf("Retrying manifest fetch for %q episode %d dub %q: %v",
			anime.Title, job.Episode.Index, job.Translation.Name, err)
		playlist, err = d.Resolver.GetMpdPlaylistFromLink(embedLink, job.Episode.Index, job.Translation.ID)
	}
	if err != nil {
		return "", fmt.Errorf("episode %d dub %q: %w", job.Episode.Index, job.Translation.Name, err)
	}

	path := manifestPath(anime, job)
	if err := d.Sink.Write(path, []byte(playlist)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// manifestPath builds <title>/<dub>/<index>. <episode title>.mpd with every
// component sanitized. Movies collapse to a single file per dub.
func manifestPath(anime *models.Anime, job Job) string {
	title := SanitizeFilename(anime.Title)
	dub := SanitizeFilename(job.Translation.Name)

	name := fmt.Sprintf("%d. %s", job.Episode.Index, job.Episode.Title)
	if job.Episode.Title == "" {
		name = fmt.Sprintf("%d", job.Episode.Index)
	}
	return title + "/" + dub + "/" + SanitizeFilename(name) + ".mpd"
}

// isTransient reports whether the failure came from the upstream service
// itself rather than from our own parsing, and so is worth one retry.
func isTransient(err error) bool {
	var svcErr *animego.ServiceError
	return errors.As(err, &svcErr)
}

func (d *Dumper) broadcast(anime *models.Anime, job Job, completed, total int, err error) {
	if d.Hub == nil {
		return
	}
	status := "completed"
	message := "Manifest saved"
	if err != nil {
		status = "failed"
		message = err.Error()
	}
	d.Hub.BroadcastJSON(models.ProgressUpdate{
		JobID:    "dump-" + anime.AnimegoID,
		Message:  message,
		Progress: float64(completed) / float64(total) * 100,
		Unit:     fmt.Sprintf("%s / %s / %d", anime.Title, job.Translation.Name, job.Episode.Index),
		Status:   status,
		Done:     completed == total,
	})
}
