package jobs

import (
	"fmt"
	"log"

	"github.com/TMKSpace/anime-tmkspace/internal/models"
)

// RefreshJobID identifies the scheduled episode-schedule refresh.
const RefreshJobID = "schedule-refresh"

// RegisterAll registers every known job with the manager.
func RegisterAll(mgr *JobManager) {
	mgr.Register(RefreshJobID, "Refresh episode schedules", refreshSchedules)
}

// refreshSchedules re-fetches the episode schedule for every watched
// title and broadcasts the ones that gained released episodes. Failures
// on a single title are logged and skipped so one dead link cannot
// starve the rest of the watchlist.
func refreshSchedules(ctx JobContext) {
	entries := ctx.Watchlist().All()
	for i, entry := range entries {
		episodes, err := ctx.Parser().GetEpisodes(entry.Link)
		if err != nil {
			log.Printf("Schedule refresh for %q failed: %v", entry.Title, err)
			ctx.WsHub().BroadcastJSON(models.ProgressUpdate{
				JobID:    RefreshJobID,
				Message:  err.Error(),
				Progress: progressOf(i+1, len(entries)),
				Unit:     entry.Title,
				Status:   "failed",
			})
			continue
		}

		released := 0
		for _, ep := range episodes {
			if ep.Released {
				released++
			}
		}

		message := "No new episodes"
		if released > entry.ReleasedCount {
			message = fmt.Sprintf("%d new episode(s) released", released-entry.ReleasedCount)
			log.Printf("%s: %s", entry.Title, message)
		}
		ctx.Watchlist().UpdateReleased(entry.AnimegoID, released)

		ctx.WsHub().BroadcastJSON(models.ProgressUpdate{
			JobID:    RefreshJobID,
			Message:  message,
			Progress: progressOf(i+1, len(entries)),
			Unit:     entry.Title,
			Status:   "completed",
			Done:     i+1 == len(entries),
		})
	}
}

func progressOf(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}
