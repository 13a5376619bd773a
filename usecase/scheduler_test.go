package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AzielCF/az-courier/config"
	domainSchedule "github.com/AzielCF/az-courier/domains/schedule"
	domainSend "github.com/AzielCF/az-courier/domains/send"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchedJob struct {
	target  domainSend.Target
	message config.Message
}

// fakeDispatcher records every Process call. The mutex keeps it safe to
// inspect while Run dispatches from its own goroutine.
type fakeDispatcher struct {
	outcome domainSend.Outcome

	mu         sync.Mutex
	dispatched []dispatchedJob
}

func (f *fakeDispatcher) Process(_ context.Context, target domainSend.Target, message config.Message) domainSend.Outcome {
	f.mu.Lock()
	f.dispatched = append(f.dispatched, dispatchedJob{target: target, message: message})
	f.mu.Unlock()
	return f.outcome
}

func (f *fakeDispatcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dispatched)
}

func (f *fakeDispatcher) calls() []dispatchedJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dispatchedJob(nil), f.dispatched...)
}

func schedulerConfig() *config.Config {
	cfg := config.Empty()
	cfg.Contacts.Personal = []config.Contact{
		{
			Name:  "Ann",
			Phone: "+15551230000",
			Messages: []config.Message{
				{Type: config.MessageTypeText, Content: "Hi", Time: "09:00"},
				{Type: config.MessageTypeText, Content: "Bye", Time: "21:30"},
			},
		},
	}
	cfg.Contacts.Groups = []config.Group{
		{
			Name: "Family Group",
			Messages: []config.Message{
				{Type: config.MessageTypeText, Content: "Good morning everyone!", Time: "09:00"},
			},
		},
	}
	return cfg
}

func at(day, hhmm string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", day+" "+hhmm)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestBuildJobs_OnePerMessageEntry(t *testing.T) {
	cfg := schedulerConfig()
	scheduler := NewScheduleService(cfg, &fakeDispatcher{})

	jobs := scheduler.Jobs()
	require.Len(t, jobs, cfg.MessageCount())
	require.Len(t, jobs, 3)

	// Configuration order: individuals first, then groups.
	assert.Equal(t, domainSend.TargetIndividual, jobs[0].Target.Kind)
	assert.Equal(t, "09:00", jobs[0].TimeOfDay)
	assert.Equal(t, "21:30", jobs[1].TimeOfDay)
	assert.Equal(t, domainSend.TargetGroup, jobs[2].Target.Kind)

	for _, job := range jobs {
		assert.NotEmpty(t, job.ID)
		assert.Equal(t, job.Message.Time, job.TimeOfDay)
	}
}

func TestBuildJobs_DuplicatesAreNotMerged(t *testing.T) {
	cfg := config.Empty()
	cfg.Contacts.Personal = []config.Contact{
		{
			Name:  "Ann",
			Phone: "+15551230000",
			Messages: []config.Message{
				{Type: config.MessageTypeText, Content: "one", Time: "09:00"},
				{Type: config.MessageTypeText, Content: "two", Time: "09:00"},
			},
		},
	}

	scheduler := NewScheduleService(cfg, &fakeDispatcher{})
	due := scheduler.Tick(at("2026-08-25", "09:00"))
	assert.Len(t, due, 2, "same target and time must both fire")
}

func TestTick_AtMostOncePerDay(t *testing.T) {
	scheduler := NewScheduleService(schedulerConfig(), &fakeDispatcher{})

	due := scheduler.Tick(at("2026-08-25", "09:00"))
	require.Len(t, due, 2)

	// Second tick in the same minute must be a no-op.
	assert.Empty(t, scheduler.Tick(at("2026-08-25", "09:00")))

	// Still fired for the rest of the day.
	assert.Empty(t, scheduler.Tick(at("2026-08-25", "09:00").Add(30*time.Second)))
}

func TestTick_DayRollover(t *testing.T) {
	scheduler := NewScheduleService(schedulerConfig(), &fakeDispatcher{})

	require.Len(t, scheduler.Tick(at("2026-08-25", "09:00")), 2)
	assert.Empty(t, scheduler.Tick(at("2026-08-25", "09:00")))

	// Same wall-clock time next day fires again.
	assert.Len(t, scheduler.Tick(at("2026-08-26", "09:00")), 2)
}

func TestTick_MidnightJobEligibleFromFirstTickOfDay(t *testing.T) {
	cfg := config.Empty()
	cfg.Contacts.Personal = []config.Contact{
		{
			Name:     "Ann",
			Phone:    "+15551230000",
			Messages: []config.Message{{Type: config.MessageTypeText, Content: "midnight", Time: "00:00"}},
		},
	}
	scheduler := NewScheduleService(cfg, &fakeDispatcher{})

	require.Len(t, scheduler.Tick(at("2026-08-25", "00:00")), 1)
	assert.Empty(t, scheduler.Tick(at("2026-08-25", "23:59")))
	assert.Len(t, scheduler.Tick(at("2026-08-26", "00:00")), 1)
}

func TestTick_NotDueOtherMinutes(t *testing.T) {
	scheduler := NewScheduleService(schedulerConfig(), &fakeDispatcher{})

	assert.Empty(t, scheduler.Tick(at("2026-08-25", "08:59")))
	assert.Empty(t, scheduler.Tick(at("2026-08-25", "09:01")))
}

func TestTick_OrderingIndividualsBeforeGroups(t *testing.T) {
	scheduler := NewScheduleService(schedulerConfig(), &fakeDispatcher{})

	due := scheduler.Tick(at("2026-08-25", "09:00"))
	require.Len(t, due, 2)
	assert.Equal(t, domainSend.TargetIndividual, due[0].Target.Kind)
	assert.Equal(t, domainSend.TargetGroup, due[1].Target.Kind)
}

func TestRun_DispatchesDueJobs(t *testing.T) {
	dispatcher := &fakeDispatcher{outcome: domainSend.Sent()}
	scheduler := NewScheduleService(schedulerConfig(), dispatcher).(*serviceSchedule)
	scheduler.now = func() time.Time { return at("2026-08-25", "09:00") }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return dispatcher.callCount() == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	// Clock frozen inside the fired minute: each job fired exactly once.
	dispatched := dispatcher.calls()
	require.Len(t, dispatched, 2)
	assert.Equal(t, "Ann", dispatched[0].target.Name)
	assert.Equal(t, "Hi", dispatched[0].message.Content)
	assert.Equal(t, "Family Group", dispatched[1].target.Name)
}

func TestRun_FailuresDoNotStopTheLoop(t *testing.T) {
	dispatcher := &fakeDispatcher{outcome: domainSend.Failed("session closed")}
	scheduler := NewScheduleService(schedulerConfig(), dispatcher).(*serviceSchedule)

	current := at("2026-08-25", "09:00")
	scheduler.now = func() time.Time { return current }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return dispatcher.callCount() == 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestJobsSnapshotIsACopy(t *testing.T) {
	scheduler := NewScheduleService(schedulerConfig(), &fakeDispatcher{})

	jobs := scheduler.Jobs()
	jobs[0] = domainSchedule.Job{}
	assert.NotEqual(t, scheduler.Jobs()[0], jobs[0])
}
