package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case RenderStartedMsg:
		return m.handleRenderStarted(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", "S":
		m.LastAction = "Starting story render..."
		return m, triggerStory(m.Client)
	case "b", "B":
		m.LastAction = "Starting bulletin render..."
		return m, triggerBulletin(m.Client)
	}
	return m, nil
}

// handleStatusUpdate syncs local state with one poll result.
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.Err = nil
	m.Jobs = msg.Status.Jobs
	m.Activity = msg.Status.Activity
	return m, nil
}

// handleRenderStarted records the trigger outcome.
func (m Model) handleRenderStarted(msg RenderStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.LastAction = fmt.Sprintf("❌ %s render refused: %v", msg.Kind, msg.Err)
		return m, nil
	}
	m.LastAction = fmt.Sprintf("📤 %s render started: %s", msg.Kind, msg.JobID)
	return m, nil
}
