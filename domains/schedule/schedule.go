package schedule

import (
	"context"
	"time"

	"github.com/AzielCF/az-courier/config"
	domainSend "github.com/AzielCF/az-courier/domains/send"
)

// Job binds one target and one message to a daily fire time. Jobs are
// built once from configuration and immutable for the process lifetime;
// per-day fired state lives in the scheduler, not here.
type Job struct {
	ID        string            `json:"id"`
	Target    domainSend.Target `json:"target"`
	Message   config.Message    `json:"message"`
	TimeOfDay string            `json:"time_of_day"`
}

type IScheduleUsecase interface {
	// Jobs returns the registered jobs in configuration order.
	Jobs() []Job
	// Tick returns every job due at now's minute that has not yet fired
	// for now's date, marking each returned job fired as part of the
	// same call.
	Tick(now time.Time) []Job
	// Run polls until ctx is cancelled, dispatching due jobs
	// sequentially on each tick. An in-flight dispatch completes before
	// cancellation is honored.
	Run(ctx context.Context, pollInterval time.Duration)
}
