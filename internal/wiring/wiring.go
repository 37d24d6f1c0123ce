// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rbwasm/internal/adapters/cas"
	_ "go.trai.ch/rbwasm/internal/adapters/config"
	_ "go.trai.ch/rbwasm/internal/adapters/fs"
	_ "go.trai.ch/rbwasm/internal/adapters/imagegen"
	_ "go.trai.ch/rbwasm/internal/adapters/logger"
	_ "go.trai.ch/rbwasm/internal/adapters/shell"
	_ "go.trai.ch/rbwasm/internal/adapters/source"
	_ "go.trai.ch/rbwasm/internal/adapters/telemetry"
	_ "go.trai.ch/rbwasm/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/rbwasm/internal/adapters/toolchain"
	_ "go.trai.ch/rbwasm/internal/adapters/wasm"
	_ "go.trai.ch/rbwasm/internal/adapters/workspace"
	// Register app nodes.
	_ "go.trai.ch/rbwasm/internal/app"
)
