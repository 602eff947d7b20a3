// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mkroot/internal/adapters/cas"
	_ "go.trai.ch/mkroot/internal/adapters/config"
	_ "go.trai.ch/mkroot/internal/adapters/dpkg"
	_ "go.trai.ch/mkroot/internal/adapters/fetch"
	_ "go.trai.ch/mkroot/internal/adapters/fs"
	_ "go.trai.ch/mkroot/internal/adapters/logger"
	_ "go.trai.ch/mkroot/internal/adapters/shell"
	_ "go.trai.ch/mkroot/internal/adapters/telemetry"
	_ "go.trai.ch/mkroot/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/mkroot/internal/app"
	_ "go.trai.ch/mkroot/internal/engine/builder"
)
