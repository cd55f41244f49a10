package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateOdometer:
		content = m.form.View()
	default:
		content = m.upNext.View()
	}

	var footer string
	switch {
	case m.err != nil:
		footer = dangerStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		footer = successStyle.Render(m.status)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Up Next"),
		summaryStyle.Render(m.summary()),
		content,
		footer,
		m.help.View(m.keys),
	))
}

func (m Model) summary() string {
	var overdue, soon int
	for _, a := range m.assessments {
		switch a.Status {
		case models.StatusOverdue:
			overdue++
		case models.StatusDueSoon:
			soon++
		}
	}
	return fmt.Sprintf("%d services · %d overdue · %d due soon", len(m.assessments), overdue, soon)
}
