package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkroot/internal/adapters/logger"
	"go.trai.ch/mkroot/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry.tracer"

	// TraceEnv enables span timing reports on the logger when set to "1".
	TraceEnv = "MKROOT_TRACE"

	instrumentationName = "mkroot"
)

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			if os.Getenv(TraceEnv) != "1" {
				return NewNoOpTracer(), nil
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			Setup(NewLogBridge(log))
			return NewOTelTracer(instrumentationName), nil
		},
	})
}
