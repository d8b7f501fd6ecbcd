package api

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"newsreel/compose"
)

const (
	activityCap = 50
	jobCap      = 50
)

// JobState is one render job as reported by GET /api/status.
type JobState struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	State   string    `json:"state"`
	Output  string    `json:"output,omitempty"`
	Error   string    `json:"error,omitempty"`
	Started time.Time `json:"started"`
	Updated time.Time `json:"updated"`
}

func (j JobState) terminal() bool {
	return j.State == "done" || j.State == "failed"
}

// jobStore tracks job lifecycles and a rolling activity feed. All
// access goes through the mutex, handlers and the engine's state
// callback run on different goroutines.
type jobStore struct {
	mu       sync.Mutex
	jobs     map[string]*JobState
	activity []string
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*JobState)}
}

// begin registers a queued job. It refuses IDs that are still in
// flight so one video is never rendered twice concurrently.
func (st *jobStore) begin(id, kind string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if j, ok := st.jobs[id]; ok && !j.terminal() {
		return false
	}
	now := time.Now()
	st.jobs[id] = &JobState{ID: id, Kind: kind, State: "queued", Started: now, Updated: now}
	st.pruneLocked()
	st.noteLocked("📥 %s job %s queued", kind, id)
	return true
}

func (st *jobStore) markRunning(id string) {
	st.setState(id, "running")
}

// transition records an engine lifecycle stage.
func (st *jobStore) transition(id string, s compose.State) {
	st.setState(id, s.String())
}

func (st *jobStore) setState(id, state string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	j, ok := st.jobs[id]
	if !ok {
		return
	}
	j.State = state
	j.Updated = time.Now()
	st.noteLocked("🎬 %s: %s", id, state)
}

func (st *jobStore) finish(id, output string, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	j, ok := st.jobs[id]
	if !ok {
		return
	}
	j.Updated = time.Now()
	if err != nil {
		j.State = "failed"
		j.Error = err.Error()
		st.noteLocked("❌ %s failed: %v", id, err)
		return
	}
	j.State = "done"
	j.Output = output
	st.noteLocked("✅ %s done: %s", id, output)
}

// snapshot returns the jobs newest-first plus the activity feed.
func (st *jobStore) snapshot() ([]JobState, []string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	jobs := make([]JobState, 0, len(st.jobs))
	for _, j := range st.jobs {
		jobs = append(jobs, *j)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].Started.After(jobs[k].Started) })
	activity := make([]string, len(st.activity))
	copy(activity, st.activity)
	return jobs, activity
}

func (st *jobStore) noteLocked(format string, args ...any) {
	line := time.Now().Format("15:04:05") + " " + fmt.Sprintf(format, args...)
	st.activity = append(st.activity, line)
	if len(st.activity) > activityCap {
		st.activity = st.activity[len(st.activity)-activityCap:]
	}
}

// pruneLocked drops the oldest finished jobs once the map outgrows
// jobCap. In-flight jobs are never dropped.
func (st *jobStore) pruneLocked() {
	if len(st.jobs) <= jobCap {
		return
	}
	terminal := make([]*JobState, 0, len(st.jobs))
	for _, j := range st.jobs {
		if j.terminal() {
			terminal = append(terminal, j)
		}
	}
	sort.Slice(terminal, func(i, k int) bool { return terminal[i].Started.Before(terminal[k].Started) })
	for _, j := range terminal {
		if len(st.jobs) <= jobCap {
			break
		}
		delete(st.jobs, j.ID)
	}
}
