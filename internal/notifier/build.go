package notifier

import (
	"fmt"
	"io"
	"strings"

	"github.com/pedromssoares/service-agenda-for-cars/internal/constants"
)

// Options selects and configures sinks by name.
type Options struct {
	Sinks  []string
	MQTT   MQTTConfig
	Stdout io.Writer
}

// Build returns a Multi over the requested sinks, each wrapped with retries.
// The returned close function releases broker connections.
func Build(opts Options) (Multi, func(), error) {
	var (
		out     Multi
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, name := range opts.Sinks {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case constants.SinkTray:
			out = append(out, WithRetry(NewTray()))
		case constants.SinkStdout:
			out = append(out, NewStdout(opts.Stdout))
		case constants.SinkMQTT:
			m, err := NewMQTT(opts.MQTT)
			if err != nil {
				closeAll()
				return nil, func() {}, err
			}
			closers = append(closers, m.Close)
			out = append(out, WithRetry(m))
		case "":
		default:
			closeAll()
			return nil, func() {}, fmt.Errorf("unknown notification sink %q", name)
		}
	}
	return out, closeAll, nil
}
