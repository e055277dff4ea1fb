// Package alerts implements the minute-granular alert scheduler (C6):
// a time-keyed queue of deferred tasks drained by a single ticking
// worker, grounded on the teacher's internal/scheduler package (mutex
// + slog + time.Ticker tick loop) but stripped of cron-expression
// parsing, job categories, and concurrency semaphores, none of which
// this domain's once-per-minute reminder/auto-close model needs.
package alerts

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/offkai-bot/offkai/internal/clock"
	"github.com/offkai-bot/offkai/internal/offkai"
)

// ErrTimeInPast is returned by Register when the normalized time is at
// or before the scheduler's current notion of now (spec §4.6, §7).
var ErrTimeInPast = errors.New("alerts: time in past")

// TimeKey is a minute-resolution JST calendar key, "YYYY-MM-DDThh:mm".
type TimeKey string

// KeyFor floors t to the minute in JST and formats it as a TimeKey.
func KeyFor(t time.Time) TimeKey {
	return TimeKey(t.In(offkai.JST).Format("2006-01-02T15:04"))
}

// Task is one deferred unit of work. Label is used only for logging;
// Action performs the work and re-enters whatever owns the mutation
// (typically the orchestrator), receiving the tick's timestamp.
type Task struct {
	Label  string
	Action func(now time.Time) error
}

// DefaultTickInterval is Run's tick cadence when the caller passes 0
// (spec §4.6's nominal one-tick-per-minute cadence).
const DefaultTickInterval = 60 * time.Second

// Scheduler holds the time-keyed task queue and drains it on a
// wall-clock tick (spec §4.6).
type Scheduler struct {
	mu    sync.Mutex
	tasks map[TimeKey][]*Task
	clock clock.Clock
	tick  time.Duration
}

// New returns an empty Scheduler using c to read the current time and
// ticking every interval (config.SchedulerConfig.TickIntervalSeconds).
// interval <= 0 falls back to DefaultTickInterval — tests pass a short
// interval to exercise Run without waiting a full minute per tick.
func New(c clock.Clock, interval time.Duration) *Scheduler {
	if c == nil {
		c = clock.Real{}
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		tasks: make(map[TimeKey][]*Task),
		clock: c,
		tick:  interval,
	}
}

// Register appends task to the bucket for when, normalized to JST.
// It rejects times at or before the scheduler's current now with
// ErrTimeInPast (spec §4.6).
func (s *Scheduler) Register(when time.Time, task *Task) error {
	now := s.clock.Now()
	if !when.After(now) {
		return ErrTimeInPast
	}
	key := KeyFor(when)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[key] = append(s.tasks[key], task)
	return nil
}

// Clear drops every scheduled task.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[TimeKey][]*Task)
}

// Pending reports how many tasks are currently queued, for tests and
// diagnostics.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, bucket := range s.tasks {
		n += len(bucket)
	}
	return n
}

// Tick computes now's minute key, atomically removes its bucket, and
// runs each task in registration order. A task that returns an error
// is logged and does not stop the remaining tasks in the bucket, and
// is not re-enqueued (spec §4.6).
func (s *Scheduler) Tick(now time.Time) {
	key := KeyFor(now)

	s.mu.Lock()
	due := s.tasks[key]
	delete(s.tasks, key)
	s.mu.Unlock()

	for _, task := range due {
		if err := task.Action(now); err != nil {
			slog.Error("alerts: task failed", "label", task.Label, "error", err)
		}
	}
}

// Run ticks once every s.tick interval, wall-clock driven, until ctx
// is cancelled. It never exits because of a task-level error (spec
// §5: "the scheduler loop swallows all exceptions from task actions").
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("alerts: scheduler started", "tick_interval", s.tick)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("alerts: scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(s.clock.Now())
		}
	}
}
