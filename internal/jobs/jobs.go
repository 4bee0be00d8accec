package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// StartJobs registers the background jobs and starts the scheduler.
func StartJobs(app JobContext) {
	RegisterAll(app.JobManager())

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startScheduleRefreshJob(s, app)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
}

func startScheduleRefreshJob(s *gocron.Scheduler, app JobContext) {
	interval := app.Config().RefreshInterval
	if interval == 0 {
		log.Println("Refresh interval is 0, scheduled schedule refresh is disabled.")
		return
	}

	log.Printf("Scheduling job: '%s' to run every %d minutes.", RefreshJobID, interval)

	_, err := s.Every(interval).Minutes().Do(func() {
		log.Println("Scheduler is triggering job:", RefreshJobID)
		// Submit through the manager so manual and scheduled triggers
		// cannot run the same job twice.
		if err := app.JobManager().RunJob(RefreshJobID, app); err != nil {
			log.Printf("Scheduled job '%s' could not start: %v", RefreshJobID, err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling '%s' job: %v", RefreshJobID, err)
	}
}
