// Package cronjobs owns the scheduled background work: refreshing the AI
// summary from the anomaly feed and nudging the simulated responder roster.
package cronjobs

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/robfig/cron/v3"

	"safetysight/store"
	"safetysight/summarization"
	"safetysight/types"
)

// simulatedStatuses are the states the availability simulation rotates
// through. Emergency is excluded; only real escalation paths should set it.
var simulatedStatuses = []string{
	types.ResponderAvailable,
	types.ResponderBusy,
	types.ResponderOffline,
}

// InitCronJobs schedules the background jobs and starts the scheduler. The
// returned cron can be stopped on shutdown.
func InitCronJobs(generator *summarization.Generator, responders *store.ResponderDirectory) *cron.Cron {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Summary refresh: every 5 minutes.
	_, err := c.AddFunc("*/5 * * * *", func() {
		log.Println("CronJob: Summary Refresh Running")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := generator.Refresh(ctx); err != nil {
			log.Printf("Error refreshing summary: %v", err)
		}
	})
	if err != nil {
		log.Println("Error scheduling Summary Refresh:", err)
	}

	// Responder availability simulation: every 2 minutes, roughly a third of
	// the roster drifts to a new status.
	_, err = c.AddFunc("*/2 * * * *", func() {
		log.Println("CronJob: Responder Simulation Running")
		now := time.Now().UTC()
		responders.Touch(func(r *types.Responder) {
			if r.Status == types.ResponderEmergency {
				return
			}
			if rand.Intn(3) == 0 {
				r.Status = simulatedStatuses[rand.Intn(len(simulatedStatuses))]
				r.LastUpdate = now
			}
		})
	})
	if err != nil {
		log.Println("Error scheduling Responder Simulation:", err)
	}

	c.Start()
	return c
}
