package scheduler

import (
	"context"
	"time"

	"github.com/sportvenue/booking-service/pkg/clock"
	"github.com/sportvenue/booking-service/pkg/rabbitmq"
	"go.uber.org/zap"
)

const (
	maxAttempts = 3
	retryDelay  = 5 * time.Second
)

// Inventory is the slice of the session service the scheduler drives.
type Inventory interface {
	ClearExpired(ctx context.Context) (int64, error)
	GenerateNextDay(ctx context.Context) (int, error)
}

// EventPublisher mirrors the broker publisher; nil disables publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Scheduler runs the daily cleanup-and-generate job. Runs are serial: one
// background goroutine fires at midnight, retries a failed run up to
// maxAttempts with a fixed delay, then gives up until the next trigger.
// Cancelling the context aborts a pending retry wait immediately.
type Scheduler struct {
	inventory Inventory
	clock     clock.Clock
	publisher EventPublisher
	log       *zap.Logger

	attempts int
	delay    time.Duration
}

func New(inventory Inventory, clk clock.Clock, publisher EventPublisher, log *zap.Logger) *Scheduler {
	return &Scheduler{
		inventory: inventory,
		clock:     clk,
		publisher: publisher,
		log:       log,
		attempts:  maxAttempts,
		delay:     retryDelay,
	}
}

// Start launches the scheduler goroutine. The first run happens
// immediately to self-heal an empty inventory at process start; after that
// the job fires once per day at midnight.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	s.Run(ctx)

	for {
		now := s.clock.Now()
		next := nextMidnight(now)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("scheduler stopped")
			return
		case <-timer.C:
			s.Run(ctx)
		}
	}
}

// Run executes one scheduled job: clear expired sessions, then generate
// tomorrow's. A failed attempt is retried after a fixed delay; the retry
// wait holds no locks and aborts as soon as ctx is cancelled. Exhausting
// all attempts is terminal for this run — the next trigger is unaffected.
func (s *Scheduler) Run(ctx context.Context) bool {
	s.log.Info("session generation job starting")

	for attempt := 1; attempt <= s.attempts; attempt++ {
		created, err := s.runAttempt(ctx)
		if err == nil {
			s.log.Info("session generation succeeded",
				zap.Int("attempt", attempt),
				zap.Int("created", created))
			if s.publisher != nil && created > 0 {
				if err := s.publisher.Publish(rabbitmq.KeySessionsGenerated, map[string]int{"created": created}); err != nil {
					s.log.Warn("publish sessions.generated failed", zap.Error(err))
				}
			}
			return true
		}

		s.log.Warn("session generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < s.attempts {
			select {
			case <-ctx.Done():
				s.log.Info("retry wait aborted by shutdown")
				return false
			case <-time.After(s.delay):
			}
		}
	}

	s.log.Error("session generation failed permanently",
		zap.Int("attempts", s.attempts))
	return false
}

func (s *Scheduler) runAttempt(ctx context.Context) (int, error) {
	if _, err := s.inventory.ClearExpired(ctx); err != nil {
		return 0, err
	}
	return s.inventory.GenerateNextDay(ctx)
}

func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
