// Package ledger remembers which stories have already been rendered
// and published so pipelines never reuse them.
package ledger

import (
	"context"
	"log"
)

// Ledger tracks used story IDs.
type Ledger interface {
	MarkUsed(ctx context.Context, storyID string) error
	IsUsed(ctx context.Context, storyID string) (bool, error)
	Close() error
}

// Open returns a Redis-backed ledger when addr is set and reachable,
// otherwise an in-memory one. The in-memory fallback forgets on
// restart, so a down Redis is logged loudly.
func Open(addr string) Ledger {
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, story ledger is in-memory only")
		return NewMemory()
	}
	l, err := NewRedisLedger(addr)
	if err != nil {
		log.Printf("⚠️ Story ledger falling back to memory: %v", err)
		return NewMemory()
	}
	return l
}
