package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/tui/components/upnext"
)

type SessionState int

const (
	StateUpNext SessionState = iota
	StateOdometer
)

// Store is the part of the storage provider the TUI writes through.
type Store interface {
	GetVehicle(ctx context.Context, id string) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v models.Vehicle) error
}

// ResyncFunc recomputes every assessment and reschedules alerts.
type ResyncFunc func(ctx context.Context) ([]models.DueAssessment, error)

type assessmentsMsg struct {
	assessments []models.DueAssessment
	err         error
}

type odometerSavedMsg struct {
	vehicle models.Vehicle
	err     error
}

type Model struct {
	store        Store
	resync       ResyncFunc
	now          func() time.Time
	state        SessionState
	keys         KeyMap
	help         help.Model
	upNext       upnext.Model
	assessments  []models.DueAssessment
	form         *huh.Form
	odometerForm *OdometerFormModel
	editing      *models.Vehicle
	status       string
	err          error
	quitting     bool
	width        int
	height       int
}

func NewModel(store Store, resync ResyncFunc, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		store:  store,
		resync: resync,
		now:    now,
		state:  StateUpNext,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		upNext: upnext.New(nil, now(), 0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		list, err := m.resync(context.Background())
		return assessmentsMsg{assessments: list, err: err}
	}
}

func (m Model) saveOdometer(v models.Vehicle, km float64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		current, err := m.store.GetVehicle(ctx, v.ID)
		if err != nil {
			return odometerSavedMsg{vehicle: v, err: err}
		}
		current.CurrentOdometerKm = km
		if err := current.Validate(); err != nil {
			return odometerSavedMsg{vehicle: current, err: err}
		}
		return odometerSavedMsg{vehicle: current, err: m.store.UpdateVehicle(ctx, current)}
	}
}
