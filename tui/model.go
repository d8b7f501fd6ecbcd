// Package tui is the studio console: a thin client over the render
// API that shows job lifecycles and recent activity, and fires demo
// renders for smoke-testing a running server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"newsreel/api"
)

// Model represents the studio client state. All job data is synced
// from the server on every poll, nothing is tracked locally.
type Model struct {
	Client *StudioClient

	Jobs       []api.JobState
	Activity   []string
	Connected  bool
	LastAction string
	Err        error
}

// NewModel creates a studio model pointed at a render API.
func NewModel(serverURL string) Model {
	return Model{Client: NewStudioClient(serverURL)}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		pollStatus(m.Client),
		tickCmd(),
	)
}
