package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkroot/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/mkroot/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/mkroot/internal/adapters/dpkg"               //nolint:depguard // Wired in app layer
	"go.trai.ch/mkroot/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/mkroot/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/mkroot/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/mkroot/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/mkroot/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			dpkg.NodeID,
			builder.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			shell.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	database, err := graft.Dep[ports.PackageDatabase](ctx)
	if err != nil {
		return nil, err
	}

	b, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	openStore, err := graft.Dep[ports.BuildInfoStoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, database, b, hasher, openStore, executor, log, tel), nil
}
