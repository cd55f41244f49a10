package upnext

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/notify"
)

// UpdateOdometerMsg asks the parent model to open the odometer form for a vehicle.
type UpdateOdometerMsg struct {
	Vehicle models.Vehicle
}

var (
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dueSoonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	upcomingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func statusBadge(s models.DueStatus) string {
	switch s {
	case models.StatusOverdue:
		return overdueStyle.Render("● " + s.Label())
	case models.StatusDueSoon:
		return dueSoonStyle.Render("● " + s.Label())
	default:
		return upcomingStyle.Render("● " + s.Label())
	}
}

type Item struct {
	Assessment models.DueAssessment
	Now        time.Time
}

func (i Item) Title() string {
	return fmt.Sprintf("%s · %s", i.Assessment.ServiceType.Name, i.Assessment.Vehicle.Name)
}

func (i Item) Description() string {
	return statusBadge(i.Assessment.Status) + "  " + notify.Body(i.Assessment, i.Now)
}

func (i Item) FilterValue() string {
	return i.Assessment.Vehicle.Name + " " + i.Assessment.ServiceType.Name
}

type KeyMap struct {
	Odometer key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Odometer: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "update odometer"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(assessments []models.DueAssessment, now time.Time, width, height int) Model {
	l := list.New(items(assessments, now), list.NewDefaultDelegate(), width, height)
	l.Title = "Up Next"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Odometer}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Odometer}
	}

	return Model{list: l, keys: keys}
}

func items(assessments []models.DueAssessment, now time.Time) []list.Item {
	out := make([]list.Item, len(assessments))
	for i, a := range assessments {
		out[i] = Item{Assessment: a, Now: now}
	}
	return out
}

// SetAssessments replaces the listed assessments, keeping their order.
func (m *Model) SetAssessments(assessments []models.DueAssessment, now time.Time) {
	m.list.SetItems(items(assessments, now))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted assessment, if any.
func (m Model) Selected() (models.DueAssessment, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.DueAssessment{}, false
	}
	return item.Assessment, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Odometer) {
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return UpdateOdometerMsg{Vehicle: a.Vehicle} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No upcoming services. Add a vehicle with 'agenda vehicle add'.\n"
	}
	return m.list.View()
}
