package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/AzielCF/az-courier/config"
	domainSchedule "github.com/AzielCF/az-courier/domains/schedule"
	domainSend "github.com/AzielCF/az-courier/domains/send"
	"github.com/AzielCF/az-courier/pkg/timeutils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type serviceSchedule struct {
	dispatcher domainSend.IDispatchUsecase
	jobs       []domainSchedule.Job

	// firedDate is the only mutable state: job ID -> date (YYYY-MM-DD) of
	// the last fire. Guarded so the read-and-mark in Tick stays atomic if
	// a concurrent poller is ever introduced.
	mu        sync.Mutex
	firedDate map[string]string

	now func() time.Time
}

// NewScheduleService builds one job per message entry in the
// configuration, personal contacts first, then groups, preserving list
// order. Two messages for the same target at the same time are both
// scheduled; the configuration author owns deduplication.
func NewScheduleService(cfg *config.Config, dispatcher domainSend.IDispatchUsecase) domainSchedule.IScheduleUsecase {
	service := &serviceSchedule{
		dispatcher: dispatcher,
		firedDate:  make(map[string]string),
		now:        time.Now,
	}

	for _, contact := range cfg.Contacts.Personal {
		target := domainSend.IndividualTarget(contact.Name, contact.Phone)
		for _, message := range contact.Messages {
			service.jobs = append(service.jobs, newJob(target, message))
			logrus.WithFields(logrus.Fields{
				"contact": contact.Name,
				"time":    message.Time,
			}).Info("[SCHEDULER] Scheduled message")
		}
	}

	for _, group := range cfg.Contacts.Groups {
		target := domainSend.GroupTarget(group.Name)
		for _, message := range group.Messages {
			service.jobs = append(service.jobs, newJob(target, message))
			logrus.WithFields(logrus.Fields{
				"group": group.Name,
				"time":  message.Time,
			}).Info("[SCHEDULER] Scheduled message")
		}
	}

	return service
}

func newJob(target domainSend.Target, message config.Message) domainSchedule.Job {
	return domainSchedule.Job{
		ID:        uuid.NewString(),
		Target:    target,
		Message:   message,
		TimeOfDay: message.Time,
	}
}

func (service *serviceSchedule) Jobs() []domainSchedule.Job {
	jobs := make([]domainSchedule.Job, len(service.jobs))
	copy(jobs, service.jobs)
	return jobs
}

// Tick returns the jobs due at now's minute that have not fired for
// now's date yet, marking them fired in the same critical section. Fired
// flags reset implicitly on date rollover, so a 00:00 job is eligible
// again from the first tick of the new day.
func (service *serviceSchedule) Tick(now time.Time) []domainSchedule.Job {
	minute := timeutils.MinuteKey(now)
	date := timeutils.DateKey(now)

	service.mu.Lock()
	defer service.mu.Unlock()

	var due []domainSchedule.Job
	for _, job := range service.jobs {
		if job.TimeOfDay != minute {
			continue
		}
		if service.firedDate[job.ID] == date {
			continue
		}
		service.firedDate[job.ID] = date
		due = append(due, job)
	}
	return due
}

// Run is the cooperative scheduler loop: evaluate due jobs, dispatch them
// sequentially in configuration order, then sleep until the next poll.
// Dispatch is intentionally serialized; the backing messaging session is
// not safe to drive for multiple targets at once. Cancellation is honored
// between dispatch calls, never by interrupting one in flight.
func (service *serviceSchedule) Run(ctx context.Context, pollInterval time.Duration) {
	logrus.WithFields(logrus.Fields{
		"jobs":          len(service.jobs),
		"poll_interval": pollInterval.String(),
	}).Info("[SCHEDULER] Scheduler started")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		due := service.Tick(service.now())
		for _, job := range due {
			if ctx.Err() != nil {
				logrus.Info("[SCHEDULER] Stop requested, leaving remaining jobs for next start")
				return
			}
			service.dispatch(ctx, job)
		}

		select {
		case <-ctx.Done():
			logrus.Info("[SCHEDULER] Scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

func (service *serviceSchedule) dispatch(ctx context.Context, job domainSchedule.Job) {
	outcome := service.dispatcher.Process(ctx, job.Target, job.Message)

	entry := logrus.WithFields(logrus.Fields{
		"job_id": job.ID,
		"target": job.Target.Name,
		"time":   job.TimeOfDay,
		"status": outcome.Status,
	})

	switch outcome.Status {
	case domainSend.StatusSent:
		entry.Info("[SCHEDULER] Job dispatched")
	case domainSend.StatusSkipped:
		entry.WithField("reason", outcome.Reason).Warn("[SCHEDULER] Job skipped")
	default:
		// A single job failure never stops the loop; the next scheduled
		// occurrence is the implicit retry.
		entry.WithField("reason", outcome.Reason).Error("[SCHEDULER] Job failed")
	}
}
