// Package fs provides file system adapters for walking installed trees.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeWalker = (*Walker)(nil)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all regular files below root in lexical order.
// Symbolic links are followed: a link to a file is yielded, a link to a
// directory is descended into and its files are yielded below the link's path.
// Links leading back to a directory being walked are ignored.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		t := &treeWalk{yield: yield}
		if err := t.walk(root, root); err != nil && !t.stopped {
			yield("", zerr.With(zerr.Wrap(err, domain.ErrReadDirFailed.Error()), "root", root))
		}
	}
}

type treeWalk struct {
	yield   func(string, error) bool
	stopped bool
	// active holds the resolved directories the current position is nested in.
	active []string
}

// walk visits dir, reporting paths relative to logical.
func (t *treeWalk) walk(dir, logical string) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	t.active = append(t.active, real)
	defer func() { t.active = t.active[:len(t.active)-1] }()

	return filepath.WalkDir(real, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(real, path)
		if err != nil {
			return err
		}
		target := filepath.Join(logical, rel)

		if d.Type()&fs.ModeSymlink != 0 {
			return t.follow(path, target)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return t.emit(target)
	})
}

func (t *treeWalk) follow(path, target string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	switch {
	case info.Mode().IsRegular():
		return t.emit(target)
	case info.IsDir():
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return err
		}
		parent := filepath.Dir(path)
		if t.loops(parent, resolved) {
			return nil
		}
		t.active = append(t.active, parent)
		err = t.walk(resolved, target)
		t.active = t.active[:len(t.active)-1]
		if err != nil {
			return err
		}
		if t.stopped {
			return filepath.SkipAll
		}
	}
	return nil
}

func (t *treeWalk) emit(path string) error {
	if !t.yield(path, nil) {
		t.stopped = true
		return filepath.SkipAll
	}
	return nil
}

// loops reports whether dir lies inside the link's parent or any directory being walked.
func (t *treeWalk) loops(parent, dir string) bool {
	if within(parent, dir) {
		return true
	}
	for _, a := range t.active {
		if within(a, dir) {
			return true
		}
	}
	return false
}

// within reports whether path equals dir or lies below it.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
