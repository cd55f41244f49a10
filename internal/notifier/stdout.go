package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

// Stdout prints alerts to a terminal. Used for --dry-run and headless setups.
type Stdout struct {
	w io.Writer
}

func NewStdout(w io.Writer) *Stdout {
	if w == nil {
		w = os.Stdout
	}
	return &Stdout{w: w}
}

func (s *Stdout) Name() string { return constants.SinkStdout }

func (s *Stdout) Send(_ context.Context, alert models.PendingAlert) error {
	_, err := fmt.Fprintf(s.w, "%s\n  %s\n", titleStyle.Render(alert.Title), alert.Body)
	return err
}
