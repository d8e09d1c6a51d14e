// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"competition-service/models"
)

// StartStatusScheduler advances tournament statuses by the clock:
// PUBLISHED tournaments whose start date passed become ONGOING, and
// ONGOING ones past their end date become COMPLETED. Match statuses
// are never touched here — matches go LIVE and COMPLETED only through
// their explicit lifecycle endpoints.
func (s *TournamentService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			var starting []models.Tournament
			err := s.DB.Where("status = ? AND start_date <= ?", models.TournamentStatusPublished, now).
				Find(&starting).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, t := range starting {
				if err := s.DB.Model(&t).Update("status", models.TournamentStatusOngoing).Error; err != nil {
					log.Printf("[Scheduler] Failed to activate tournament %s: %v", t.ID, err)
				} else {
					log.Printf("✅ Tournament now ONGOING: %s", t.Name)
				}
			}

			var ending []models.Tournament
			err = s.DB.Where("status = ? AND end_date IS NOT NULL AND end_date <= ?", models.TournamentStatusOngoing, now).
				Find(&ending).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, t := range ending {
				if err := s.DB.Model(&t).Update("status", models.TournamentStatusCompleted).Error; err != nil {
					log.Printf("[Scheduler] Failed to complete tournament %s: %v", t.ID, err)
				} else {
					log.Printf("✅ Tournament COMPLETED: %s", t.Name)
				}
			}
		}),
	)
}
