package tui

import (
	"fmt"
	"strings"
)

const (
	maxJobsShown     = 8
	maxActivityShown = 10
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎬 Newsreel Studio"))
	b.WriteString("\n\n")

	if !m.Connected {
		b.WriteString(ErrorStyle.Render("❌ Not connected to render server"))
		if m.Err != nil {
			b.WriteString("\n")
			b.WriteString(InfoStyle.Render("   " + m.Err.Error()))
		}
		b.WriteString("\n\n")
	} else if len(m.Jobs) == 0 {
		b.WriteString(HighlightStyle.Render("👋 Server idle, no jobs yet"))
		b.WriteString("\n\n")
	}

	if m.LastAction != "" {
		b.WriteString(StatusStyle.Render(m.LastAction))
		b.WriteString("\n\n")
	}

	if len(m.Jobs) > 0 {
		b.WriteString(InfoStyle.Render("📊 Jobs:"))
		b.WriteString("\n")
		for i, job := range m.Jobs {
			if i == maxJobsShown {
				b.WriteString(InfoStyle.Render(fmt.Sprintf("   ... and %d more", len(m.Jobs)-maxJobsShown)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("   %s %-8s %-16s %s", stateIcon(job.State), job.Kind, job.ID, job.State)
			if job.Error != "" {
				line += "  " + job.Error
			} else if job.Output != "" {
				line += "  " + job.Output
			}
			b.WriteString(renderJobLine(job.State, line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.Activity) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		start := 0
		if len(m.Activity) > maxActivityShown {
			start = len(m.Activity) - maxActivityShown
		}
		for _, line := range m.Activity[start:] {
			b.WriteString(InfoStyle.Render("   " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("Press 's' for story render | 'b' for bulletin render | 'q' or Ctrl+C to quit"))
	return b.String()
}

func renderJobLine(state, line string) string {
	switch state {
	case "failed":
		return ErrorStyle.Render(line)
	case "done":
		return StatusStyle.Render(line)
	default:
		return InfoStyle.Render(line)
	}
}

func stateIcon(state string) string {
	switch state {
	case "queued":
		return "📥"
	case "done":
		return "✅"
	case "failed":
		return "❌"
	default:
		return "🎬"
	}
}
