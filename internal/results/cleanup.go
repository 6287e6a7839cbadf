package results

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RetentionJob deletes stored runs older than the configured retention
// window. It runs on a cron schedule and can also be invoked directly.
type RetentionJob struct {
	repo          *Repository
	retentionDays int
	schedule      string
	cron          *cron.Cron
	log           zerolog.Logger
}

// NewRetentionJob creates a retention job. schedule is a cron expression
// (descriptors like "@daily" are accepted).
func NewRetentionJob(repo *Repository, retentionDays int, schedule string, log zerolog.Logger) *RetentionJob {
	return &RetentionJob{
		repo:          repo,
		retentionDays: retentionDays,
		schedule:      schedule,
		log:           log.With().Str("job", "results_retention").Logger(),
	}
}

// Start registers the job and begins the cron scheduler.
func (j *RetentionJob) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(); err != nil {
			j.log.Error().Err(err).Msg("Retention run failed")
		}
	}); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info().
		Str("schedule", j.schedule).
		Int("retention_days", j.retentionDays).
		Msg("Retention job scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (j *RetentionJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}

// RunOnce prunes runs older than the retention window.
func (j *RetentionJob) RunOnce() error {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	pruned, err := j.repo.PruneOlderThan(cutoff)
	if err != nil {
		return err
	}
	if pruned > 0 {
		j.log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("Old experiments pruned")
	}
	return nil
}
