// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/rbwasm/internal/core/domain"
)

// CommandRunner runs external tools.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run spawns the command and waits for it to exit.
	//
	// The child sees the process environment with cmd.Env applied on top and
	// cmd.PathPrepend in front of PATH. The current process is never modified.
	// A non-zero exit is returned as an error carrying the exit code.
	Run(ctx context.Context, cmd *domain.Command) error
}
