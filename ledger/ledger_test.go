package ledger

import (
	"context"
	"testing"
)

func TestMemoryMarksAndChecks(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	used, err := m.IsUsed(ctx, "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if used {
		t.Error("fresh ledger reported a story as used")
	}

	if err := m.MarkUsed(ctx, "abc123"); err != nil {
		t.Fatal(err)
	}

	used, err = m.IsUsed(ctx, "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if !used {
		t.Error("marked story not reported as used")
	}

	other, _ := m.IsUsed(ctx, "other")
	if other {
		t.Error("unrelated story reported as used")
	}
}

func TestOpenWithoutAddrIsInMemory(t *testing.T) {
	l := Open("")
	defer l.Close()

	if _, ok := l.(*Memory); !ok {
		t.Fatalf("Open(\"\") = %T; want *Memory", l)
	}
}
