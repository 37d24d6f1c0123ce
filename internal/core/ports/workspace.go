package ports

import "go.trai.ch/rbwasm/internal/core/domain"

// Workspace owns the on-disk state of one run.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// Layout returns the workspace directories. All of them exist.
	Layout() domain.Layout

	// TempFile writes data to a new file in the temporary directory whose name
	// starts with pattern. The file lives until Close.
	TempFile(pattern string, data []byte) (string, error)

	// TempDir creates a new directory in the temporary directory whose name
	// starts with pattern. It lives until Close.
	TempDir(pattern string) (string, error)

	// ShadowCommands creates a directory holding a stub for each name that
	// exits successfully without doing anything. The directory is removed by
	// release unless temporaries are preserved.
	ShadowCommands(names []string) (dir string, release func() error, err error)

	// Close removes the temporary files and directories unless temporaries are preserved.
	Close() error
}

// WorkspaceFactory creates workspaces.
type WorkspaceFactory interface {
	// Create makes sure every workspace directory exists under root.
	Create(root string, preserveTemps bool) (Workspace, error)
}
