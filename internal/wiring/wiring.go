// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/plein/internal/adapters/cas"
	_ "go.trai.ch/plein/internal/adapters/config"
	_ "go.trai.ch/plein/internal/adapters/fs"
	_ "go.trai.ch/plein/internal/adapters/logger"
	_ "go.trai.ch/plein/internal/adapters/shell"
	_ "go.trai.ch/plein/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/plein/internal/app"
)
