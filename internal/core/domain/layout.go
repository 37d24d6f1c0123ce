package domain

import "path/filepath"

const (
	// DefaultWorkspaceDirName is the name of the workspace directory used when none is configured.
	DefaultWorkspaceDirName = ".rbwasm"

	// BuildDirName is the name of the scratch build directory.
	BuildDirName = "build"

	// DownloadsDirName is the name of the toolchain download directory.
	DownloadsDirName = "downloads"

	// CacheDirName is the name of the completed install directory.
	CacheDirName = "cache"

	// TemporaryDirName is the name of the ephemeral directory.
	TemporaryDirName = "tmp"

	// StageLogDir is the directory below the temporary one holding per-stage logs.
	StageLogDir = "logs"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "rbwasm.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for generated executables (rwxr-xr-x).
	ExecPerm = 0o755
)

// Layout is the directory structure owned by a workspace.
// Every directory is guaranteed to exist once the workspace is created.
type Layout struct {
	Root      string
	Build     string
	Downloads string
	Cache     string
	Temporary string
}

// NewLayout derives the workspace layout from its root directory.
func NewLayout(root string) Layout {
	return Layout{
		Root:      root,
		Build:     filepath.Join(root, BuildDirName),
		Downloads: filepath.Join(root, DownloadsDirName),
		Cache:     filepath.Join(root, CacheDirName),
		Temporary: filepath.Join(root, TemporaryDirName),
	}
}

// Dirs returns every directory of the layout, root excluded.
func (l Layout) Dirs() []string {
	return []string{l.Build, l.Downloads, l.Cache, l.Temporary}
}
