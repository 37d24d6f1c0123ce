package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// SourceKind distinguishes the variants of a BuildSource.
type SourceKind int

const (
	// SourceRemote is a tarball of a hosted repository at a given ref.
	SourceRemote SourceKind = iota + 1
	// SourceLocalDir is an already extracted source tree on the host.
	SourceLocalDir
)

const (
	githubScheme = "github"
	pathScheme   = "path"

	archiveURLFormat = "https://api.github.com/repos/%s/%s/tarball/%s"
)

// BuildSource identifies where the source tree of a native build comes from.
// It is a comparable value and is safe to use as a map key.
type BuildSource struct {
	Kind  SourceKind
	Owner string
	Repo  string
	Ref   string
	Path  string
}

// RemoteSource returns a BuildSource for owner/repo at ref.
func RemoteSource(owner, repo, ref string) BuildSource {
	return BuildSource{Kind: SourceRemote, Owner: owner, Repo: repo, Ref: ref}
}

// LocalSource returns a BuildSource for a directory on the host.
func LocalSource(path string) BuildSource {
	return BuildSource{Kind: SourceLocalDir, Path: path}
}

// ParseBuildSource parses the textual forms "github:<owner>/<repo>@<ref>" and "path:<dir>".
func ParseBuildSource(s string) (BuildSource, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return BuildSource{}, zerr.With(ErrInvalidBuildSource, "source", s)
	}

	switch kind {
	case githubScheme:
		owner, repoAndRef, ok := strings.Cut(rest, "/")
		if !ok || strings.Contains(repoAndRef, "/") {
			return BuildSource{}, zerr.With(zerr.Wrap(ErrInvalidBuildSource, "only one / should appear"), "source", s)
		}
		repo, ref, ok := strings.Cut(repoAndRef, "@")
		if !ok || strings.Contains(ref, "@") {
			return BuildSource{}, zerr.With(zerr.Wrap(ErrInvalidBuildSource, "only one @ should appear"), "source", s)
		}
		if owner == "" || repo == "" || ref == "" {
			return BuildSource{}, zerr.With(ErrInvalidBuildSource, "source", s)
		}
		return RemoteSource(owner, repo, ref), nil
	case pathScheme:
		if rest == "" {
			return BuildSource{}, zerr.With(ErrInvalidBuildSource, "source", s)
		}
		return LocalSource(rest), nil
	default:
		return BuildSource{}, zerr.With(zerr.Wrap(ErrInvalidBuildSource, "unknown build source kind"), "kind", kind)
	}
}

// String returns the textual form accepted by ParseBuildSource.
func (s BuildSource) String() string {
	switch s.Kind {
	case SourceRemote:
		return fmt.Sprintf("%s:%s/%s@%s", githubScheme, s.Owner, s.Repo, s.Ref)
	case SourceLocalDir:
		return pathScheme + ":" + s.Path
	default:
		return ""
	}
}

// ArchiveURL returns the tarball download link of a remote source.
func (s BuildSource) ArchiveURL() string {
	return fmt.Sprintf(archiveURLFormat, s.Owner, s.Repo, s.Ref)
}

// Absolute anchors a local source at the current directory.
// The path is part of the cache key, so it must not depend on where the tool runs.
func (s BuildSource) Absolute() (BuildSource, error) {
	if s.Kind != SourceLocalDir {
		return s, nil
	}
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return BuildSource{}, zerr.With(zerr.Wrap(err, ErrInvalidBuildSource.Error()), "source", s.String())
	}
	s.Path = abs
	return s, nil
}

// IsRemote reports whether the source has to be fetched.
func (s BuildSource) IsRemote() bool {
	return s.Kind == SourceRemote
}

// MarshalText implements encoding.TextMarshaler.
func (s BuildSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so sources can be read from config files.
func (s *BuildSource) UnmarshalText(text []byte) error {
	parsed, err := ParseBuildSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
