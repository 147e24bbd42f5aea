package snapshots

import (
	"context"
	"time"
)

// runTimeout bounds a single scheduled snapshot run
const runTimeout = 2 * time.Minute

// Job runs the snapshot service on a schedule
type Job struct {
	service *Service
}

// NewJob creates a new snapshot job
func NewJob(service *Service) *Job {
	return &Job{service: service}
}

// Name returns the job name
func (j *Job) Name() string {
	return "pricing_snapshots"
}

// Run takes one pricing snapshot
func (j *Job) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	_, err := j.service.RunOnce(ctx)
	return err
}
