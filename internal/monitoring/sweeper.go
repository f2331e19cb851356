package monitoring

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/talentgrid/talentgrid-be/internal/services"
)

// Sweeper deactivates jobs whose expiry has passed, on a cron-defined cadence.
type Sweeper struct {
	jobSvc   services.JobServiceProvider
	eventSvc services.EventServiceProvider
	schedule cron.Schedule
	done     chan bool
}

// NewSweeper creates a sweeper from a standard cron spec.
func NewSweeper(jobSvc services.JobServiceProvider, eventSvc services.EventServiceProvider, spec string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return &Sweeper{
		jobSvc:   jobSvc,
		eventSvc: eventSvc,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweep loop. It sweeps once on start, then at each cron tick.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting job expiry sweeper")
	s.sweep()

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping job expiry sweeper")
			return
		case <-timer.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

func (s *Sweeper) sweep() {
	byEmployer, err := s.jobSvc.DeactivateExpired()
	if err != nil {
		log.Error().Err(err).Msg("Job expiry sweep failed")
		return
	}
	for employerID, count := range byEmployer {
		log.Info().Int64("employer_id", employerID).Int("jobs", count).Msg("Deactivated expired jobs")
		s.eventSvc.CreateEvent(employerID, "job.expired", "info",
			fmt.Sprintf("%d job(s) reached their expiry and were deactivated", count))
	}
}
