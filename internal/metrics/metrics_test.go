package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

func assessments(statuses ...models.DueStatus) []models.DueAssessment {
	out := make([]models.DueAssessment, len(statuses))
	for i, s := range statuses {
		out[i] = models.DueAssessment{Status: s}
	}
	return out
}

func TestObserve(t *testing.T) {
	c := New()
	c.Observe(assessments(models.StatusOverdue, models.StatusOverdue, models.StatusUpcoming), 4, 1700000000)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.due.WithLabelValues("overdue")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.due.WithLabelValues("dueSoon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.due.WithLabelValues("upcoming")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.pending))

	// A later observation overwrites, it does not accumulate.
	c.Observe(assessments(models.StatusDueSoon), 1, 1700000060)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.due.WithLabelValues("overdue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.due.WithLabelValues("dueSoon")))
}

func TestWriteText(t *testing.T) {
	c := New()
	c.Observe(assessments(models.StatusDueSoon), 1, 1700000000)

	expected := `
# HELP agenda_pending_alerts Number of installed alerts waiting for delivery.
# TYPE agenda_pending_alerts gauge
agenda_pending_alerts 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "agenda_pending_alerts"))

	text := c.String()
	assert.Contains(t, text, `agenda_due_services{status="dueSoon"} 1`)
	assert.Contains(t, text, `agenda_due_services{status="overdue"} 0`)
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.Observe(assessments(models.StatusOverdue), 0, 1700000000)

	path := filepath.Join(t.TempDir(), "collector", "agenda.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `agenda_due_services{status="overdue"} 1`)
	assert.Contains(t, string(data), "agenda_last_resync_timestamp_seconds")
}
