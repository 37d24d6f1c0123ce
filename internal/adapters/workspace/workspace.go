// Package workspace manages the directories and temporary files of a build run.
package workspace

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory creates workspaces rooted at a host directory.
type Factory struct {
	lookPath func(string) (string, error)
}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{lookPath: exec.LookPath}
}

// Create makes sure every workspace directory exists under root.
// A relative root is resolved against the current directory.
func (f *Factory) Create(root string, preserveTemps bool) (ports.Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrWorkspaceCreateFailed.Error()), "root", root)
	}

	layout := domain.NewLayout(abs)
	for _, dir := range layout.Dirs() {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWorkspaceCreateFailed.Error()), "dir", dir)
		}
	}

	return &Workspace{
		layout:   layout,
		preserve: preserveTemps,
		lookPath: f.lookPath,
	}, nil
}

// Workspace implements ports.Workspace.
type Workspace struct {
	layout   domain.Layout
	preserve bool
	lookPath func(string) (string, error)

	mu    sync.Mutex
	owned []string
}

// Layout returns the workspace directories.
func (w *Workspace) Layout() domain.Layout {
	return w.layout
}

// TempFile writes data into a new file of the temporary directory.
func (w *Workspace) TempFile(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(w.layout.Temporary, pattern+"-*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTempFileFailed.Error()), "pattern", pattern)
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", zerr.With(zerr.Wrap(err, domain.ErrTempFileFailed.Error()), "path", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", zerr.With(zerr.Wrap(err, domain.ErrTempFileFailed.Error()), "path", path)
	}

	w.own(path)
	return path, nil
}

// TempDir creates a new directory in the temporary directory.
func (w *Workspace) TempDir(pattern string) (string, error) {
	dir, err := os.MkdirTemp(w.layout.Temporary, pattern+"-")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTempFileFailed.Error()), "pattern", pattern)
	}
	w.own(dir)
	return dir, nil
}

// ShadowCommands creates a directory of stubs that exit successfully.
// Each stub is a script whose interpreter is the host's true binary.
func (w *Workspace) ShadowCommands(names []string) (string, func() error, error) {
	truePath, err := w.lookPath("true")
	if err != nil {
		return "", nil, zerr.Wrap(errors.Join(domain.ErrCommandNotFound, err), domain.ErrShadowCommandFailed.Error())
	}

	dir, err := os.MkdirTemp(w.layout.Temporary, "shadow-")
	if err != nil {
		return "", nil, zerr.Wrap(err, domain.ErrShadowCommandFailed.Error())
	}

	release := func() error {
		if w.preserve {
			return nil
		}
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrTempReleaseFailed.Error()), "dir", dir)
		}
		return nil
	}

	stub := []byte("#!" + truePath + "\n")
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, stub, domain.ExecPerm); err != nil {
			_ = release()
			return "", nil, zerr.With(zerr.Wrap(err, domain.ErrShadowCommandFailed.Error()), "command", name)
		}
	}

	return dir, release, nil
}

// Close removes the owned temporary files and directories unless they are preserved.
func (w *Workspace) Close() error {
	w.mu.Lock()
	owned := w.owned
	w.owned = nil
	w.mu.Unlock()

	if w.preserve {
		return nil
	}

	var errs error
	for _, path := range owned {
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrTempReleaseFailed.Error()), "path", path))
		}
	}
	return errs
}

func (w *Workspace) own(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.owned = append(w.owned, path)
}
