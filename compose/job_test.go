package compose

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJobAdvanceNotifiesObserver(t *testing.T) {
	var seen []State
	job := &Job{ID: "j1", OnState: func(s State) { seen = append(seen, s) }}

	job.Advance(StateBackgroundReady)
	job.Advance(StateLayersRendered)

	if job.State() != StateLayersRendered {
		t.Fatalf("State() = %v; want %v", job.State(), StateLayersRendered)
	}
	want := []State{StateBackgroundReady, StateLayersRendered}
	if len(seen) != len(want) {
		t.Fatalf("observer saw %d transitions; want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d = %v; want %v", i, seen[i], want[i])
		}
	}
}

func TestJobCleanupRemovesTempDir(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "job_scratch")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "layer.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	job := &Job{ID: "j2", TmpDir: tmp}
	job.Cleanup()

	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Fatalf("temp dir still present after Cleanup: %v", err)
	}
	if job.State() != StateCleanedUp {
		t.Fatalf("State() after Cleanup = %v; want %v", job.State(), StateCleanedUp)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateBackgroundReady, "background_ready"},
		{StateLayersRendered, "layers_rendered"},
		{StateComposited, "composited"},
		{StateAudioAttached, "audio_attached"},
		{StateEncoded, "encoded"},
		{StateCleanedUp, "cleaned_up"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Fatalf("State(%d).String() = %q; want %q", tt.state, got, tt.want)
		}
	}
}
