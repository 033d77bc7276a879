package jobs

import (
	"context"
	"log"
	"time"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"

	"github.com/go-co-op/gocron/v2"
)

// SessionSweeper periodically prunes session-index entries whose sessions
// already expired. The sessions themselves expire via store TTLs; the sweep
// keeps the per-account indexes honest.
type SessionSweeper struct {
	scheduler gocron.Scheduler
	store     session.Store
	interval  time.Duration
}

func NewSessionSweeper(store session.Store, interval time.Duration) (*SessionSweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	sweeper := &SessionSweeper{
		scheduler: scheduler,
		store:     store,
		interval:  interval,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sweeper.sweep),
		gocron.WithName("session-index-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return sweeper, nil
}

func (s *SessionSweeper) Start() {
	log.Printf("Starting session sweeper, interval %s", s.interval)
	s.scheduler.Start()
}

func (s *SessionSweeper) Stop() error {
	log.Printf("Stopping session sweeper")
	return s.scheduler.Shutdown()
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.store.SweepAccountIndexes(ctx); err != nil {
		log.Printf("session sweep failed: %v", err)
	}
}
