package models

import (
	"testing"
	"time"
)

func intPtr(i int) *int              { return &i }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func TestVehicle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		vehicle Vehicle
		wantErr bool
	}{
		{name: "valid", vehicle: Vehicle{Name: "Civic", UnitPreference: UnitKilometers, CurrentOdometerKm: 1200}},
		{name: "zero odometer", vehicle: Vehicle{Name: "New car", UnitPreference: UnitMiles}},
		{name: "empty name", vehicle: Vehicle{Name: "  ", UnitPreference: UnitKilometers}, wantErr: true},
		{name: "bad unit", vehicle: Vehicle{Name: "Civic", UnitPreference: "furlongs"}, wantErr: true},
		{name: "negative odometer", vehicle: Vehicle{Name: "Civic", UnitPreference: UnitKilometers, CurrentOdometerKm: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vehicle.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDistanceUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    DistanceUnit
		wantErr bool
	}{
		{in: "", want: UnitKilometers},
		{in: "KM", want: UnitKilometers},
		{in: "kilometres", want: UnitKilometers},
		{in: "mi", want: UnitMiles},
		{in: " Miles ", want: UnitMiles},
		{in: "leagues", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDistanceUnit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDistanceUnit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDistanceUnit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if UnitMiles.Abbreviation() != "mi" || UnitKilometers.Abbreviation() != "km" {
		t.Error("unexpected unit abbreviations")
	}
}

func TestServiceEvent_Validate(t *testing.T) {
	base := ServiceEvent{VehicleID: "v", ServiceTypeID: "s", Date: time.Now(), OdometerKm: 100}

	tests := []struct {
		name    string
		mutate  func(e *ServiceEvent)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *ServiceEvent) {}},
		{name: "zero odometer", mutate: func(e *ServiceEvent) { e.OdometerKm = 0 }, wantErr: true},
		{name: "negative cost", mutate: func(e *ServiceEvent) { e.Cost = floatPtr(-1) }, wantErr: true},
		{name: "zero cost", mutate: func(e *ServiceEvent) { e.Cost = floatPtr(0) }},
		{name: "missing vehicle", mutate: func(e *ServiceEvent) { e.VehicleID = "" }, wantErr: true},
		{name: "missing date", mutate: func(e *ServiceEvent) { e.Date = time.Time{} }, wantErr: true},
		{name: "five photos", mutate: func(e *ServiceEvent) { e.Photos = make([][]byte, 5) }},
		{name: "six photos", mutate: func(e *ServiceEvent) { e.Photos = make([][]byte, 6) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base
			tt.mutate(&e)
			err := e.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIntervalsValidate(t *testing.T) {
	tmpl := ServiceTypeTemplate{Name: "Oil", DefaultIntervalDays: intPtr(0)}
	if err := tmpl.Validate(); err == nil {
		t.Error("expected error for zero day interval")
	}
	tmpl = ServiceTypeTemplate{Name: "Custom"}
	if err := tmpl.Validate(); err != nil {
		t.Errorf("template without intervals should be valid: %v", err)
	}
	rule := ReminderRule{VehicleID: "v", ServiceTypeID: "s", DistanceIntervalKm: floatPtr(-5)}
	if err := rule.Validate(); err == nil {
		t.Error("expected error for negative distance interval")
	}
	rule = ReminderRule{ServiceTypeID: "s"}
	if err := rule.Validate(); err == nil {
		t.Error("expected error for rule without vehicle")
	}
}

func TestDueAssessment_Helpers(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	a := DueAssessment{
		Vehicle:       Vehicle{ID: "v1", CurrentOdometerKm: 9500},
		ServiceType:   ServiceTypeTemplate{ID: "t1"},
		DueDate:       timePtr(now.AddDate(0, 0, 10)),
		DueOdometerKm: floatPtr(10000),
	}

	days := a.DaysUntilDue(now)
	if days == nil || *days != 10 {
		t.Errorf("DaysUntilDue() = %v, want 10", days)
	}
	dist := a.DistanceUntilDueKm()
	if dist == nil || *dist != 500 {
		t.Errorf("DistanceUntilDueKm() = %v, want 500", dist)
	}
	if a.IsOverdueByDate(now) || a.IsOverdueByDistance() {
		t.Error("assessment should not be overdue")
	}
	if got := a.AlertID(); got != "service-v1-t1" {
		t.Errorf("AlertID() = %q", got)
	}

	a.Vehicle.CurrentOdometerKm = 10000
	if !a.IsOverdueByDistance() {
		t.Error("reaching the due odometer should be overdue")
	}
	if !a.IsOverdueByDate(now.AddDate(0, 0, 11)) {
		t.Error("passing the due date should be overdue")
	}

	empty := DueAssessment{}
	if empty.DaysUntilDue(now) != nil || empty.DistanceUntilDueKm() != nil {
		t.Error("helpers should return nil without criteria")
	}
}

func TestDueStatus_String(t *testing.T) {
	if StatusOverdue.String() != "overdue" || StatusDueSoon.String() != "dueSoon" || StatusUpcoming.String() != "upcoming" {
		t.Error("unexpected status names")
	}
	if !(StatusOverdue < StatusDueSoon && StatusDueSoon < StatusUpcoming) {
		t.Error("status priority order broken")
	}
}

func TestPendingAlert(t *testing.T) {
	now := time.Now()
	a := PendingAlert{ID: "service-a-b", Title: "Service Due: Oil Change", Body: "Civic • Due in 3 days", FireAt: now}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !a.IsDue(now) || a.IsDue(now.Add(-time.Second)) {
		t.Error("IsDue boundary wrong")
	}
	if a.Text() != "Service Due: Oil Change\nCivic • Due in 3 days" {
		t.Errorf("Text() = %q", a.Text())
	}
	bad := PendingAlert{Title: "x", FireAt: now}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := Settings{NotificationsEnabled: false, FireHour: 7, FireMinute: 30, Timezone: "UTC", CurrencySymbol: "€"}
	got, err := MapToSettings(SettingsToMap(s))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}

	defaults, err := MapToSettings(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if defaults != DefaultSettings() {
		t.Errorf("empty map should yield defaults, got %+v", defaults)
	}

	if _, err := MapToSettings(map[string]string{"notification_fire_hour": "nine"}); err == nil {
		t.Error("expected parse error")
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{name: "defaults", s: DefaultSettings()},
		{name: "hour too large", s: Settings{FireHour: 24, Timezone: "UTC"}, wantErr: true},
		{name: "minute negative", s: Settings{FireMinute: -1, Timezone: "UTC"}, wantErr: true},
		{name: "bad timezone", s: Settings{Timezone: "Mars/Olympus"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
