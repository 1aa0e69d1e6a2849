/*
Package jobs provides small utilities for running and waiting on background
tasks. It standardizes the use of channels and contexts so that background
work can be canceled and shut down gracefully.
*/
package jobs

import (
	"context"
	"time"

	"github.com/corkboard/corkboard/src/logging"
	"github.com/rs/zerolog"
)

// A Job tracks the completion of an asynchronous or background task.
type Job struct {
	Name   string
	Ctx    context.Context
	Logger zerolog.Logger
	cancel func()
	done   chan struct{}
}

func New(name string) *Job {
	logger := logging.With().Str("job", name).Logger()
	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.AttachLoggerToContext(&logger, ctx)
	return &Job{
		Name:   name,
		Ctx:    ctx,
		Logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Signals the Job to finish its work and shut down. Expected to be called
// from outside the job, e.g. when shutting down the application.
func (j *Job) Cancel() {
	j.cancel()
}

// Returns a channel closed when Cancel has been called.
func (j *Job) Canceled() <-chan struct{} {
	return j.Ctx.Done()
}

// Marks the Job as finished. Expected to be called by the job code itself
// when its work is complete.
func (j *Job) Finish() *Job {
	close(j.done)
	return j
}

// Returns a channel closed when Finish has been called.
func (j *Job) Finished() <-chan struct{} {
	return j.done
}

// A utility for running and canceling multiple jobs at once.
type Jobs []*Job

// Cancels all tracked jobs and waits for them to finish gracefully. Returns
// when all jobs finish or when the timeout expires, whichever comes first,
// along with the names of any jobs that did not finish in time.
func (jobs Jobs) CancelAndWait(timeout time.Duration) []string {
	for _, job := range jobs {
		job.Cancel()
	}

	allDone := make(chan struct{})
	go func() {
		for _, job := range jobs {
			<-job.Finished()
		}
		close(allDone)
	}()

	timer := time.NewTimer(timeout)
	select {
	case <-timer.C:
		return jobs.ListUnfinished()
	case <-allDone:
		return nil
	}
}

func (jobs Jobs) ListUnfinished() []string {
	unfinished := []string{}
	for _, job := range jobs {
		select {
		case <-job.Finished():
		default:
			unfinished = append(unfinished, job.Name)
		}
	}
	return unfinished
}
