package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
	"github.com/pedromssoares/service-agenda-for-cars/internal/reminder"
)

var now = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func floatPtr(f float64) *float64 { return &f }

func dueIn(days int) *time.Time {
	t := now.AddDate(0, 0, days).Add(time.Hour)
	return &t
}

func assessment(id string, status models.DueStatus) models.DueAssessment {
	return models.DueAssessment{
		ID:          id,
		Vehicle:     models.Vehicle{ID: "v-" + id, Name: "Civic", UnitPreference: models.UnitKilometers},
		ServiceType: models.ServiceTypeTemplate{ID: "t-" + id, Name: "Oil Change", IsEnabled: true},
		Status:      status,
	}
}

type fakeFacility struct {
	pending  map[string]models.PendingAlert
	clears   int
	failWith error
}

func newFakeFacility() *fakeFacility {
	return &fakeFacility{pending: map[string]models.PendingAlert{}}
}

func (f *fakeFacility) ClearPending(ctx context.Context) error {
	f.clears++
	f.pending = map[string]models.PendingAlert{}
	return nil
}

func (f *fakeFacility) InstallPending(ctx context.Context, alert models.PendingAlert) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.pending[alert.ID] = alert
	return nil
}

func (f *fakeFacility) PendingCount(ctx context.Context) (int, error) {
	return len(f.pending), nil
}

func (f *fakeFacility) ListPending(ctx context.Context) ([]models.PendingAlert, error) {
	var out []models.PendingAlert
	for _, a := range f.pending {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFacility) RemovePending(ctx context.Context, id string) error {
	delete(f.pending, id)
	return nil
}

func TestShouldNotify(t *testing.T) {
	upcoming := func(days *time.Time, dist *float64) models.DueAssessment {
		a := assessment("x", models.StatusUpcoming)
		a.DueDate = days
		if dist != nil {
			a.DueOdometerKm = floatPtr(a.Vehicle.CurrentOdometerKm + *dist)
		}
		return a
	}

	tests := []struct {
		name string
		a    models.DueAssessment
		want bool
	}{
		{name: "overdue", a: assessment("x", models.StatusOverdue), want: true},
		{name: "due soon", a: assessment("x", models.StatusDueSoon), want: true},
		{name: "upcoming 60 days", a: upcoming(dueIn(60), nil), want: true},
		{name: "upcoming 61 days", a: upcoming(dueIn(61), nil), want: false},
		{name: "upcoming 2000 km", a: upcoming(nil, floatPtr(2000)), want: true},
		{name: "upcoming 2001 km", a: upcoming(nil, floatPtr(2001)), want: false},
		{name: "far date near distance", a: upcoming(dueIn(200), floatPtr(1500)), want: true},
		{name: "no criteria", a: upcoming(nil, nil), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldNotify(tt.a, now))
		})
	}
}

func TestSelect_BoundedAndOrdered(t *testing.T) {
	var in []models.DueAssessment
	for i := 0; i < 50; i++ {
		status := models.StatusOverdue
		if i >= 20 {
			status = models.StatusDueSoon
		}
		in = append(in, assessment(fmt.Sprintf("%02d", i), status))
	}
	// Non-qualifying entries interleaved must not count toward the bound.
	in = append(in[:10], append([]models.DueAssessment{assessment("far", models.StatusUpcoming)}, in[10:]...)...)

	got := Select(in, now)
	require.Len(t, got, constants.MaxNotifications)
	for i, a := range got {
		assert.Equal(t, fmt.Sprintf("%02d", i), a.ID)
	}
}

func TestSelect_FewerThanBound(t *testing.T) {
	in := []models.DueAssessment{assessment("a", models.StatusOverdue), assessment("b", models.StatusUpcoming)}
	got := Select(in, now)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Empty(t, Select(nil, now))
}

func TestTriggerTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	policy := Policy{Location: loc, FireHour: 9, FireMinute: 0}
	soon := now.Add(constants.ImmediateDelay)

	overdue := assessment("o", models.StatusOverdue)
	overdue.DueDate = dueIn(-3)

	future := assessment("f", models.StatusDueSoon)
	futureDate := time.Date(2026, 7, 1, 15, 0, 0, 0, loc)
	future.DueDate = &futureDate

	pastButNotOverdue := assessment("p", models.StatusDueSoon)
	past := now.Add(-time.Hour)
	pastButNotOverdue.DueDate = &past

	todayEarlier := assessment("t", models.StatusDueSoon)
	laterToday := time.Date(2026, 6, 15, 20, 0, 0, 0, loc) // 09:00 local already passed
	todayEarlier.DueDate = &laterToday

	nearDistance := assessment("n", models.StatusDueSoon)
	nearDistance.DueOdometerKm = floatPtr(500)

	farDistance := assessment("d", models.StatusUpcoming)
	farDistance.DueOdometerKm = floatPtr(1500)

	tests := []struct {
		name string
		a    models.DueAssessment
		want time.Time
	}{
		{name: "overdue", a: overdue, want: soon},
		{name: "future due date", a: future, want: time.Date(2026, 7, 1, 9, 0, 0, 0, loc)},
		{name: "past due date", a: pastButNotOverdue, want: soon},
		{name: "fire time already passed today", a: todayEarlier, want: soon},
		{name: "distance within 500 km", a: nearDistance, want: soon},
		{name: "fallback", a: farDistance, want: now.Add(constants.FallbackDelay)},
		{name: "no criteria", a: assessment("z", models.StatusUpcoming), want: now.Add(24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.TriggerTime(tt.a, now)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestTriggerTime_CustomHourAndDefaultLocation(t *testing.T) {
	a := assessment("f", models.StatusUpcoming)
	due := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	a.DueDate = &due

	got := Policy{FireHour: 18, FireMinute: 30}.TriggerTime(a, now)
	want := time.Date(due.In(time.Local).Year(), due.In(time.Local).Month(), due.In(time.Local).Day(), 18, 30, 0, 0, time.Local)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestBody(t *testing.T) {
	byDate := assessment("a", models.StatusOverdue)
	lapsed := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	byDate.DueDate = &lapsed
	assert.Equal(t, "Civic • Overdue since Mar 4, 2026", Body(byDate, now))

	byDistance := assessment("b", models.StatusOverdue)
	byDistance.Vehicle.UnitPreference = models.UnitMiles
	byDistance.Vehicle.CurrentOdometerKm = 12000
	byDistance.DueOdometerKm = floatPtr(10000)
	assert.Equal(t, "Civic • Overdue at 6214 mi", Body(byDistance, now))

	both := assessment("c", models.StatusDueSoon)
	both.DueDate = dueIn(12)
	both.Vehicle.CurrentOdometerKm = 9160
	both.DueOdometerKm = floatPtr(10000)
	assert.Equal(t, "Civic • Due in 12 days • or in 840 km", Body(both, now))

	dueToday := assessment("d", models.StatusDueSoon)
	dueToday.DueDate = dueIn(0)
	assert.Equal(t, "Civic", Body(dueToday, now))

	assert.Equal(t, "Service Due: Oil Change", Title(both))
}

func TestRenderAlert(t *testing.T) {
	a := assessment("a", models.StatusOverdue)
	fire := now.Add(5 * time.Second)
	alert := RenderAlert(a, now, fire)

	assert.Equal(t, "service-v-a-t-a", alert.ID)
	assert.Equal(t, "v-a", alert.VehicleID)
	assert.Equal(t, "t-a", alert.ServiceTypeID)
	assert.Equal(t, constants.AlertCategory, alert.Category)
	assert.True(t, alert.FireAt.Equal(fire))
	require.NoError(t, alert.Validate())
}

func TestSchedule_ReplaceAllAndIdempotent(t *testing.T) {
	f := newFakeFacility()
	f.pending["stale"] = models.PendingAlert{ID: "stale"}

	in := []models.DueAssessment{
		assessment("a", models.StatusOverdue),
		assessment("b", models.StatusDueSoon),
		assessment("c", models.StatusUpcoming),
	}
	opts := Options{Enabled: true, Policy: DefaultPolicy()}

	n, err := Schedule(context.Background(), f, in, now, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	first, _ := f.ListPending(context.Background())

	n, err = Schedule(context.Background(), f, in, now, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	second, _ := f.ListPending(context.Background())

	assert.Equal(t, first, second)
	assert.NotContains(t, f.pending, "stale")
	assert.Equal(t, 2, f.clears)
	count, _ := f.PendingCount(context.Background())
	assert.Equal(t, 2, count)
}

func TestSchedule_DisabledOnlyClears(t *testing.T) {
	f := newFakeFacility()
	f.pending["stale"] = models.PendingAlert{ID: "stale"}

	n, err := Schedule(context.Background(), f, []models.DueAssessment{assessment("a", models.StatusOverdue)}, now, Options{Enabled: false})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.pending)
}

func TestSchedule_InstallError(t *testing.T) {
	f := newFakeFacility()
	f.failWith = errors.New("facility unavailable")

	_, err := Schedule(context.Background(), f, []models.DueAssessment{assessment("a", models.StatusOverdue)}, now, Options{Enabled: true, Policy: DefaultPolicy()})
	require.Error(t, err)
	assert.ErrorIs(t, err, f.failWith)
}

type fakeSource struct {
	snap     reminder.Snapshot
	settings models.Settings
	err      error
}

func (s fakeSource) Snapshot(ctx context.Context) (reminder.Snapshot, error) { return s.snap, s.err }
func (s fakeSource) GetSettings(ctx context.Context) (models.Settings, error) {
	return s.settings, nil
}

func TestResync(t *testing.T) {
	days := 90
	src := fakeSource{
		snap: reminder.Snapshot{
			Vehicles: []models.Vehicle{{ID: "v1", Name: "Civic", UnitPreference: models.UnitKilometers, CreatedAt: now.AddDate(0, 0, -100)}},
			Templates: []models.ServiceTypeTemplate{
				{ID: "oil", Name: "Oil Change", DefaultIntervalDays: &days, IsEnabled: true},
				{ID: "wash", Name: "Wash", IsEnabled: true},
			},
		},
		settings: models.DefaultSettings(),
	}
	f := newFakeFacility()

	res, err := Resync(context.Background(), src, f, now, time.UTC)
	require.NoError(t, err)
	assert.Len(t, res.Assessments, 2)
	assert.Equal(t, 1, res.Installed)

	alert, ok := f.pending["service-v1-oil"]
	require.True(t, ok)
	assert.True(t, alert.FireAt.Equal(now.Add(constants.ImmediateDelay)))
	assert.Contains(t, alert.Body, "Overdue since")

	src.err = errors.New("db down")
	_, err = Resync(context.Background(), src, f, now, time.UTC)
	require.Error(t, err)
}

type recordingSender struct {
	sent []string
	fail map[string]bool
}

func (s *recordingSender) Send(ctx context.Context, a models.PendingAlert) error {
	if s.fail[a.ID] {
		return errors.New("sink offline")
	}
	s.sent = append(s.sent, a.ID)
	return nil
}

func TestDeliver(t *testing.T) {
	f := newFakeFacility()
	f.pending["a"] = models.PendingAlert{ID: "a", FireAt: now.Add(-time.Minute)}
	f.pending["b"] = models.PendingAlert{ID: "b", FireAt: now}
	f.pending["c"] = models.PendingAlert{ID: "c", FireAt: now.Add(time.Hour)}
	f.pending["d"] = models.PendingAlert{ID: "d", FireAt: now.Add(-time.Hour)}

	s := &recordingSender{fail: map[string]bool{"d": true}}
	n, err := Deliver(context.Background(), f, s, now)
	require.Error(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, s.sent)
	assert.Contains(t, f.pending, "c")
	assert.Contains(t, f.pending, "d")
	assert.NotContains(t, f.pending, "a")
}
