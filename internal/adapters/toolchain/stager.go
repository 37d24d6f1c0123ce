// Package toolchain stages the wasi-sdk cross compiler and its companion tools.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	wasiSDKURLFormat = "https://github.com/WebAssembly/wasi-sdk/releases/download/wasi-sdk-%s/wasi-sdk-%s-%s.tar.gz"
	wasiVfsURLFormat = "https://github.com/kateinoigakukun/wasi-vfs/releases/download/v%s/libwasi_vfs-wasm32-unknown-unknown.tar.gz"
	vfsLibraryName   = "libwasi_vfs.a"
)

var _ ports.ToolStager = (*Stager)(nil)

// Stager implements ports.ToolStager.
type Stager struct {
	fetcher  ports.ArchiveFetcher
	walker   ports.TreeWalker
	logger   ports.Logger
	goos     string
	lookPath func(string) (string, error)
}

// NewStager creates a new Stager for the host operating system.
func NewStager(fetcher ports.ArchiveFetcher, walker ports.TreeWalker, logger ports.Logger) *Stager {
	return &Stager{
		fetcher:  fetcher,
		walker:   walker,
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
	}
}

// Install makes the toolchain described by opts available.
// Downloads land in downloads/<name>-<version> and are reused on later runs.
func (s *Stager) Install(ctx context.Context, layout domain.Layout, opts domain.ToolchainOptions) (domain.Toolchain, error) {
	sdkVersion := opts.WasiSDKVersion
	if sdkVersion == "" {
		sdkVersion = domain.DefaultWasiSDKVersion
	}

	sdkURL := opts.WasiSDKURL
	if sdkURL == "" {
		u, err := wasiSDKURL(sdkVersion, s.goos)
		if err != nil {
			return domain.Toolchain{}, err
		}
		sdkURL = u
	}

	sdkRoot := filepath.Join(layout.Downloads, "wasi-sdk-"+sdkVersion)
	if err := s.stage(ctx, "wasi-sdk "+sdkVersion, sdkURL, sdkRoot, 1); err != nil {
		return domain.Toolchain{}, err
	}

	tc := domain.Toolchain{SDKRoot: sdkRoot, Version: sdkVersion}
	if _, err := os.Stat(tc.CC()); err != nil {
		return domain.Toolchain{}, zerr.With(zerr.Wrap(err, domain.ErrToolchainInstallFailed.Error()), "path", tc.CC())
	}

	vfsLibrary, err := s.vfsLibrary(ctx, layout, opts)
	if err != nil {
		return domain.Toolchain{}, err
	}
	tc.VfsLibrary = vfsLibrary

	wasmOpt, err := s.wasmOpt(opts.WasmOpt)
	if err != nil {
		return domain.Toolchain{}, err
	}
	tc.WasmOpt = wasmOpt

	return tc, nil
}

func (s *Stager) stage(ctx context.Context, what, url, dir string, strip int) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}

	s.logger.Info("downloading " + what)
	if err := s.fetcher.Fetch(ctx, url, dir, strip); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrToolchainInstallFailed.Error()), "tool", what)
	}
	return nil
}

func (s *Stager) vfsLibrary(ctx context.Context, layout domain.Layout, opts domain.ToolchainOptions) (string, error) {
	path := opts.WasiVfsLibrary
	if path == "" {
		version := opts.WasiVfsVersion
		if version == "" {
			version = domain.DefaultWasiVfsVersion
		}
		url := opts.WasiVfsURL
		if url == "" {
			url = fmt.Sprintf(wasiVfsURLFormat, version)
		}

		// The archive is kept whole since the library may sit at its top level.
		dir := filepath.Join(layout.Downloads, "wasi-vfs-"+version)
		if err := s.stage(ctx, "wasi-vfs "+version, url, dir, 0); err != nil {
			return "", err
		}
		found, err := s.findLibrary(dir)
		if err != nil {
			return "", err
		}
		path = found
	}

	if _, err := os.Stat(path); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrToolchainInstallFailed.Error()), "path", path)
	}
	return path, nil
}

// findLibrary returns the first file named libwasi_vfs.a below dir.
func (s *Stager) findLibrary(dir string) (string, error) {
	for path, err := range s.walker.WalkFiles(dir) {
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrToolchainInstallFailed.Error())
		}
		if filepath.Base(path) == vfsLibraryName {
			return path, nil
		}
	}
	err := zerr.With(zerr.New(vfsLibraryName+" not found in archive, set toolchain.wasiVfs.library to a prebuilt copy"), "dir", dir)
	return "", zerr.Wrap(err, domain.ErrToolchainInstallFailed.Error())
}

func (s *Stager) wasmOpt(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrCommandNotFound, err), "binary missing"), "command", configured)
		}
		return configured, nil
	}

	path, err := s.lookPath("wasm-opt")
	if err != nil {
		return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrCommandNotFound, err), "binary missing"), "command", "wasm-opt")
	}
	return path, nil
}

// wasiSDKURL returns the release tarball of version built for goos.
func wasiSDKURL(version, goos string) (string, error) {
	var host string
	switch goos {
	case "linux":
		host = "linux"
	case "darwin":
		host = "macos"
	case "windows":
		host = "mingw"
	default:
		return "", zerr.With(domain.ErrToolchainInstallFailed, "os", goos)
	}

	major, _, _ := strings.Cut(version, ".")
	return fmt.Sprintf(wasiSDKURLFormat, major, version, host), nil
}
