package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/tui/components/upnext"
)

type fakeStore struct {
	vehicles map[string]models.Vehicle
	updates  int
}

func (f *fakeStore) GetVehicle(_ context.Context, id string) (models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return models.Vehicle{}, errors.New("not found")
	}
	return v, nil
}

func (f *fakeStore) UpdateVehicle(_ context.Context, v models.Vehicle) error {
	f.vehicles[v.ID] = v
	f.updates++
	return nil
}

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixture() (*fakeStore, []models.DueAssessment) {
	v := models.Vehicle{ID: "v1", Name: "Civic", UnitPreference: models.UnitMiles, CurrentOdometerKm: 16093.4}
	due := fixedNow.AddDate(0, 0, -3)
	list := []models.DueAssessment{
		{
			ID:          "a1",
			Vehicle:     v,
			ServiceType: models.ServiceTypeTemplate{ID: "t1", Name: "Oil Change"},
			DueDate:     &due,
			Status:      models.StatusOverdue,
		},
	}
	return &fakeStore{vehicles: map[string]models.Vehicle{"v1": v}}, list
}

func newTestModel(store *fakeStore, list []models.DueAssessment) (Model, *int) {
	calls := 0
	resync := func(context.Context) ([]models.DueAssessment, error) {
		calls++
		return list, nil
	}
	m := NewModel(store, resync, func() time.Time { return fixedNow })
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), &calls
}

func TestParseOdometer(t *testing.T) {
	tests := []struct {
		input   string
		unit    models.DistanceUnit
		want    float64
		wantErr bool
	}{
		{input: "12000", unit: models.UnitKilometers, want: 12000},
		{input: " 0 ", unit: models.UnitKilometers, want: 0},
		{input: "100", unit: models.UnitMiles, want: 160.934},
		{input: "-1", unit: models.UnitKilometers, wantErr: true},
		{input: "abc", unit: models.UnitKilometers, wantErr: true},
		{input: "NaN", unit: models.UnitKilometers, wantErr: true},
		{input: "", unit: models.UnitKilometers, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseOdometer(tt.input, tt.unit)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOdometer(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (got < tt.want-0.001 || got > tt.want+0.001) {
			t.Errorf("ParseOdometer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInitLoadsAssessments(t *testing.T) {
	store, list := fixture()
	m, calls := newTestModel(store, list)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should return a refresh command")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if *calls != 1 {
		t.Errorf("resync called %d times, want 1", *calls)
	}
	if m.upNext.Len() != 1 {
		t.Fatalf("upNext has %d items, want 1", m.upNext.Len())
	}
	view := m.View()
	if !strings.Contains(view, "1 services · 1 overdue · 0 due soon") {
		t.Errorf("summary missing from view:\n%s", view)
	}
}

func TestRefreshErrorIsShown(t *testing.T) {
	store, _ := fixture()
	m := NewModel(store, func(context.Context) ([]models.DueAssessment, error) {
		return nil, errors.New("database is locked")
	}, func() time.Time { return fixedNow })

	updated, _ := m.Update(m.Init()())
	m = updated.(Model)
	if !strings.Contains(m.View(), "database is locked") {
		t.Error("expected refresh error in view")
	}
}

func TestOdometerKeyOpensForm(t *testing.T) {
	store, list := fixture()
	m, _ := newTestModel(store, list)
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("pressing o should emit an odometer request")
	}
	msg, ok := cmd().(upnext.UpdateOdometerMsg)
	if !ok {
		t.Fatalf("expected UpdateOdometerMsg, got %T", msg)
	}
	if msg.Vehicle.ID != "v1" {
		t.Errorf("odometer request for %q, want v1", msg.Vehicle.ID)
	}

	updated, _ = m.Update(msg)
	m = updated.(Model)
	if m.state != StateOdometer || m.form == nil {
		t.Fatal("expected odometer form to be open")
	}
	if m.odometerForm.Value != "10000" {
		t.Errorf("form prefilled with %q, want display value 10000", m.odometerForm.Value)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.state != StateUpNext {
		t.Error("esc should close the form")
	}
}

func TestSaveOdometerUpdatesStoreAndRefreshes(t *testing.T) {
	store, list := fixture()
	m, calls := newTestModel(store, list)

	msg := m.saveOdometer(store.vehicles["v1"], 20000)()
	saved, ok := msg.(odometerSavedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("saveOdometer() = %#v", msg)
	}
	if store.updates != 1 || store.vehicles["v1"].CurrentOdometerKm != 20000 {
		t.Errorf("vehicle not updated: %+v", store.vehicles["v1"])
	}

	updated, cmd := m.Update(saved)
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("a saved odometer should trigger a refresh")
	}
	m.Update(cmd())
	if *calls != 1 {
		t.Errorf("resync called %d times, want 1", *calls)
	}
	if !strings.Contains(m.status, "Civic") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSaveOdometerUnknownVehicle(t *testing.T) {
	store, list := fixture()
	m, _ := newTestModel(store, list)

	msg := m.saveOdometer(models.Vehicle{ID: "missing"}, 10)().(odometerSavedMsg)
	if msg.err == nil {
		t.Fatal("expected error for unknown vehicle")
	}
	updated, _ := m.Update(msg)
	if updated.(Model).err == nil {
		t.Error("error should be kept for display")
	}
}

func TestQuit(t *testing.T) {
	store, list := fixture()
	m, _ := newTestModel(store, list)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !updated.(Model).quitting || cmd == nil {
		t.Error("q should quit")
	}
	if updated.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
