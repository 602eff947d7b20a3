package progrock

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/mkroot/internal/tui"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry.progrock"

	// ProgressEnv selects the progress display. "tui" draws the recorded
	// vertices on stderr, anything else only records them.
	ProgressEnv = "MKROOT_PROGRESS"
)

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if os.Getenv(ProgressEnv) != "tui" {
				return New(), nil
			}
			display := tui.NewDisplay(os.Stderr)
			display.Start()
			return NewRecorder(display), nil
		},
	})
}
