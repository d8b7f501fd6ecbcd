package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollInterval is how often the studio syncs with the server.
const pollInterval = 500 * time.Millisecond

// pollStatus creates a command to fetch the server status.
func pollStatus(client *StudioClient) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		return StatusUpdateMsg{Status: status, Err: err}
	}
}

// triggerStory fires a sample narrated render.
func triggerStory(client *StudioClient) tea.Cmd {
	return func() tea.Msg {
		jobID, err := client.RenderStory()
		return RenderStartedMsg{Kind: "story", JobID: jobID, Err: err}
	}
}

// triggerBulletin fires a sample bulletin render.
func triggerBulletin(client *StudioClient) tea.Cmd {
	return func() tea.Msg {
		jobID, err := client.RenderBulletin()
		return RenderStartedMsg{Kind: "bulletin", JobID: jobID, Err: err}
	}
}

// tickCmd schedules the next poll.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
