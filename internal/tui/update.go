package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
	"github.com/pedromssoares/service-agenda-for-cars/internal/tui/components/upnext"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.upNext.SetSize(msg.Width-h, msg.Height-v-4)
		m.help.Width = msg.Width
		return m, nil

	case assessmentsMsg:
		m.err = msg.err
		if msg.err == nil {
			m.assessments = msg.assessments
			m.upNext.SetAssessments(msg.assessments, m.now())
		} else {
			logger.Warn("TUI refresh failed", "error", msg.err)
		}
		return m, nil

	case odometerSavedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to update odometer: %w", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Odometer updated for %s", msg.vehicle.Name)
		return m, m.refresh()

	case upnext.UpdateOdometerMsg:
		v := msg.Vehicle
		m.editing = &v
		m.odometerForm = &OdometerFormModel{}
		m.form = newOdometerForm(v, m.odometerForm)
		m.state = StateOdometer
		m.err = nil
		m.status = ""
		return m, m.form.Init()
	}

	if m.state == StateOdometer {
		return m.updateOdometer(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.refresh()
		}
	}

	var cmd tea.Cmd
	m.upNext, cmd = m.upNext.Update(msg)
	return m, cmd
}

func (m Model) updateOdometer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateUpNext
		m.form = nil
		m.editing = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		v := *m.editing
		m.state = StateUpNext
		m.form = nil
		m.editing = nil
		km, err := ParseOdometer(m.odometerForm.Value, v.UnitPreference)
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, m.saveOdometer(v, km)
	case huh.StateAborted:
		m.state = StateUpNext
		m.form = nil
		m.editing = nil
		return m, nil
	}
	return m, cmd
}
