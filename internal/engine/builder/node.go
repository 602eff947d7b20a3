package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkroot/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkroot/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkroot/internal/adapters/telemetry"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkroot/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mkroot/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FactoryNodeID,
			fs.VerifierNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			factory, err := graft.Dep[ports.TreeFactory](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(factory, verifier, log, tracer, tel), nil
		},
	})
}
