package scheduler

import (
	"fmt"

	"github.com/Dan9191/deploy-mock/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatsSource provides store counters
type StatsSource interface {
	Stats() models.StoreStats
}

// StatsReporter periodically logs the size of the in-memory store
type StatsReporter struct {
	cron   *cron.Cron
	source StatsSource
	log    *logrus.Logger
}

// NewStatsReporter registers the report job under the given cron spec
func NewStatsReporter(schedule string, source StatsSource, log *logrus.Logger) (*StatsReporter, error) {
	r := &StatsReporter{
		cron:   cron.New(),
		source: source,
		log:    log,
	}
	if _, err := r.cron.AddFunc(schedule, r.Report); err != nil {
		return nil, fmt.Errorf("failed to schedule stats report: %w", err)
	}
	return r, nil
}

// Report logs the current counters once
func (r *StatsReporter) Report() {
	stats := r.source.Stats()
	r.log.WithFields(logrus.Fields{
		"users":    stats.Users,
		"projects": stats.Projects,
		"files":    stats.Files,
	}).Info("Store stats")
}

// Start runs the scheduler in the background
func (r *StatsReporter) Start() {
	r.cron.Start()
}

// Stop halts the scheduler and waits for a running report to finish
func (r *StatsReporter) Stop() {
	<-r.cron.Stop().Done()
}
