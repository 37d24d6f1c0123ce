// Package config provides the configuration loader for rbwasm.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader.
// The user config is applied first, then the nearest rbwasm.yaml at or above cwd.
type Loader struct {
	Logger ports.Logger
	// UserConfigPath returns the location of the user config.
	UserConfigPath func() string
}

// NewLoader creates a new Loader reading the user config from the XDG config directory.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:         logger,
		UserConfigPath: DefaultUserConfigPath,
	}
}

// DefaultUserConfigPath returns $XDG_CONFIG_HOME/rbwasm/config.yaml.
func DefaultUserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "rbwasm", "config.yaml")
}

// Load applies the configuration files onto base.
func (l *Loader) Load(cwd string, base domain.Options) (domain.Options, error) {
	opts := base

	if l.UserConfigPath != nil {
		if path := l.UserConfigPath(); path != "" {
			if err := l.applyFile(path, &opts); err != nil && !errors.Is(err, os.ErrNotExist) {
				return domain.Options{}, err
			}
		}
	}

	path, found := findProjectFile(cwd)
	if !found {
		return opts, nil
	}
	if err := l.applyFile(path, &opts); err != nil {
		return domain.Options{}, err
	}
	return opts, nil
}

func (l *Loader) applyFile(path string, opts *domain.Options) error {
	file, err := Load(path)
	if err != nil {
		return err
	}
	l.Logger.Debug("loaded config " + path)

	if err := apply(file, filepath.Dir(path), opts); err != nil {
		return zerr.With(err, "path", path)
	}
	return nil
}

// Load reads and decodes a configuration file. Unknown fields are rejected.
func Load(path string) (*Rbwasmfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Rbwasmfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return &file, nil
}

// findProjectFile searches cwd and its parents for rbwasm.yaml.
func findProjectFile(cwd string) (string, bool) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// apply overlays the set fields of file onto opts.
// Relative paths are resolved against dir, the directory holding the file.
func apply(file *Rbwasmfile, dir string, opts *domain.Options) error {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	if file.Workspace != "" {
		opts.WorkspaceDir = resolve(file.Workspace)
	}
	if file.Output != "" {
		opts.Output = resolve(file.Output)
	}

	for _, raw := range file.Mapdir {
		m, err := domain.ParseMapping(raw)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(m.Host, domain.MagicPrefix) {
			m.Host = resolve(m.Host)
		}
		opts.Mappings = append(opts.Mappings, m)
	}
	setBool(&opts.NoBuiltinFiles, file.NoBuiltinFiles)
	if file.EnabledExts != nil {
		opts.EnabledExtensions = append([]string(nil), file.EnabledExts...)
	}

	setInt(&opts.StackSize, file.StackSize)
	setInt(&opts.AsyncifyStackSize, file.AsyncifyStackSize)
	setBool(&opts.SaveTemps, file.SaveTemps)
	setBool(&opts.DebugInfo, file.DebugInfo)
	setBool(&opts.NoVerify, file.NoVerify)

	if file.CRubySrc != "" {
		src, err := parseSource(file.CRubySrc, resolve)
		if err != nil {
			return err
		}
		opts.CRubySource = src
	}
	if file.RbWasmSupportSrc != "" {
		src, err := parseSource(file.RbWasmSupportSrc, resolve)
		if err != nil {
			return err
		}
		opts.SupportSource = src
	}

	opts.ExtraCCArgs = append(opts.ExtraCCArgs, file.Xcc...)
	opts.ExtraLinkerArgs = append(opts.ExtraLinkerArgs, file.Xlinker...)
	if file.Args != nil {
		opts.PresetArgs = append([]string(nil), file.Args...)
	}
	if file.BuildHook != "" {
		opts.BuildHook = resolve(file.BuildHook)
	}
	setInt(&opts.Jobs, file.Jobs)

	tc := file.Toolchain
	setString(&opts.Toolchain.WasiSDKVersion, tc.WasiSDK.Version)
	setString(&opts.Toolchain.WasiSDKURL, tc.WasiSDK.URL)
	setString(&opts.Toolchain.WasiVfsVersion, tc.WasiVfs.Version)
	setString(&opts.Toolchain.WasiVfsURL, tc.WasiVfs.URL)
	setString(&opts.Toolchain.WasiVfsLibrary, resolve(tc.WasiVfs.Library))
	setString(&opts.Toolchain.WasmOpt, resolve(tc.WasmOpt))

	return nil
}

func parseSource(raw string, resolve func(string) string) (domain.BuildSource, error) {
	src, err := domain.ParseBuildSource(raw)
	if err != nil {
		return domain.BuildSource{}, err
	}
	if src.Kind == domain.SourceLocalDir {
		src.Path = resolve(src.Path)
	}
	return src, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
