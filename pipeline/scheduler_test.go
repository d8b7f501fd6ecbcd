package pipeline

import (
	"context"
	"testing"
	"time"
)

func TestSchedulerRunsImmediatelyThenOnTicks(t *testing.T) {
	ran := make(chan struct{}, 16)
	s := &Scheduler{
		Every: 5 * time.Millisecond,
		Job: func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("job context has no deadline")
			}
			ran <- struct{}{}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("run %d never happened", i+1)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v after cancel, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}

func TestSchedulerKeepsTickingAfterJobError(t *testing.T) {
	ran := make(chan struct{}, 16)
	s := &Scheduler{
		Every: 5 * time.Millisecond,
		Job: func(ctx context.Context) error {
			ran <- struct{}{}
			return context.DeadlineExceeded
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	for i := 0; i < 3; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("run %d never happened, loop died on job error", i+1)
		}
	}
}

func TestSchedulerRejectsNonPositiveInterval(t *testing.T) {
	s := &Scheduler{Job: func(context.Context) error { return nil }}
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error for zero interval")
	}
}
