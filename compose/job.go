// Package compose stacks a normalized background with timed overlay
// layers, attaches the audio track, and encodes the final vertical
// video. Each render is tracked as a Job walking a fixed lifecycle so
// callers can surface progress.
package compose

import (
	"log"
	"os"
)

// State is one stage of a render job's lifecycle.
type State uint8

const (
	StateIdle State = iota
	StateBackgroundReady
	StateLayersRendered
	StateComposited
	StateAudioAttached
	StateEncoded
	StateCleanedUp
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBackgroundReady:
		return "background_ready"
	case StateLayersRendered:
		return "layers_rendered"
	case StateComposited:
		return "composited"
	case StateAudioAttached:
		return "audio_attached"
	case StateEncoded:
		return "encoded"
	default:
		return "cleaned_up"
	}
}

// Job tracks one render through its lifecycle. Audio is the narration
// track (narration mode) or the fitted music track (bulletin mode);
// empty means no audio. RequireAudio makes a missing track a hard
// error instead of a degradable one. TmpDir holds every intermediate
// artifact for this job and is removed by Cleanup on all exit paths.
type Job struct {
	ID           string
	Target       float64
	Audio        string
	RequireAudio bool
	TmpDir       string
	OutPath      string

	// OnState, when set, observes every lifecycle transition.
	OnState func(State)

	state State
}

// Advance moves the job to state s and reports the transition.
func (j *Job) Advance(s State) {
	j.state = s
	log.Printf("🎬 Job %s: %s", j.ID, s)
	if j.OnState != nil {
		j.OnState(s)
	}
}

// State returns the job's current lifecycle stage.
func (j *Job) State() State {
	return j.state
}

// Cleanup removes the job's temp dir. Callers defer it so scratch
// artifacts are dropped even when a render fails.
func (j *Job) Cleanup() {
	if j.TmpDir != "" {
		if err := os.RemoveAll(j.TmpDir); err != nil {
			log.Printf("⚠️ Job %s: temp cleanup failed: %v", j.ID, err)
		}
	}
	j.Advance(StateCleanedUp)
}
