package tui

import (
	"time"

	"newsreel/api"
)

// Messages for the tea program (polling-based)

// StatusUpdateMsg carries one poll result.
type StatusUpdateMsg struct {
	Status *api.StatusResponse
	Err    error
}

// TickMsg triggers the next poll.
type TickMsg struct {
	Time time.Time
}

// RenderStartedMsg reports the outcome of a render trigger.
type RenderStartedMsg struct {
	Kind  string
	JobID string
	Err   error
}
