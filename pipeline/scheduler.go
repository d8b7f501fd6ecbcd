package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"
)

// defaultRunTimeout bounds one scheduled run when no explicit timeout
// is set. Renders plus publishing finish well inside it.
const defaultRunTimeout = 30 * time.Minute

// Scheduler runs a job on a fixed cadence: once immediately, then on
// every tick until the context is canceled. Every run gets its own
// timeout so one stuck run cannot take the loop down with it.
type Scheduler struct {
	Every   time.Duration
	Timeout time.Duration // per run, defaults to defaultRunTimeout
	Job     func(ctx context.Context) error
}

// Run blocks until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Every <= 0 {
		return fmt.Errorf("schedule interval must be positive, got %s", s.Every)
	}
	ticker := time.NewTicker(s.Every)
	defer ticker.Stop()

	log.Printf("⏰ Scheduler started, running every %s", s.Every)
	runs := 0
	runs = s.runOnce(ctx, runs)
	for {
		select {
		case <-ctx.Done():
			log.Println("⏰ Scheduler stopped")
			return nil
		case <-ticker.C:
			runs = s.runOnce(ctx, runs)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, runs int) int {
	if ctx.Err() != nil {
		return runs
	}
	runs++
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Printf("⏰ Run #%d starting", runs)
	if err := s.Job(ctx); err != nil {
		log.Printf("❌ Run #%d failed: %v", runs, err)
	} else {
		log.Printf("✅ Run #%d finished", runs)
	}
	return runs
}
