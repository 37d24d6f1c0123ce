// Package vfs turns path mappings into the flattened image spec embedded into the executable.
package vfs

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Synthesizer expands mappings and discovers the files of an installed tree.
type Synthesizer struct {
	walker     ports.TreeWalker
	logger     ports.Logger
	exclusions []*regexp.Regexp
}

// NewSynthesizer creates a Synthesizer using the default exclusion rules.
func NewSynthesizer(walker ports.TreeWalker, logger ports.Logger) *Synthesizer {
	exclusions := make([]*regexp.Regexp, 0, len(domain.DefaultExclusions))
	for _, pattern := range domain.DefaultExclusions {
		exclusions = append(exclusions, regexp.MustCompile(pattern))
	}
	return &Synthesizer{
		walker:     walker,
		logger:     logger,
		exclusions: exclusions,
	}
}

// Expand replaces a leading magic prefix on each side of m independently.
// The guest side is resolved against guestRoot and the host side against hostRoot.
func (s *Synthesizer) Expand(m domain.PathMapping, hostRoot, guestRoot string) domain.PathMapping {
	return domain.PathMapping{
		Guest: expand(m.Guest, guestRoot, path.Join),
		Host:  expand(m.Host, hostRoot, filepath.Join),
	}
}

func expand(p, root string, join func(...string) string) string {
	rest, ok := strings.CutPrefix(p, domain.MagicPrefix)
	if !ok {
		return p
	}
	// Only a whole leading component counts as the prefix.
	if rest != "" && rest[0] != '/' && rest[0] != filepath.Separator {
		return p
	}
	return join(root, rest)
}

// BuiltinMappings maps every installed file below installedRoot to the magic
// prefix, skipping files matched by the exclusion rules.
func (s *Synthesizer) BuiltinMappings(installedRoot string) ([]domain.PathMapping, error) {
	root, err := filepath.Abs(installedRoot)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrReadDirFailed.Error()), "root", installedRoot)
	}

	var mappings []domain.PathMapping
	for file, err := range s.walker.WalkFiles(root) {
		if err != nil {
			return nil, err
		}
		if s.excluded(file) {
			s.logger.Debug("vfs: excluded " + file)
			continue
		}

		rel, err := filepath.Rel(root, file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrReadDirFailed.Error()), "path", file)
		}
		mappings = append(mappings, domain.PathMapping{
			Guest: domain.MagicPrefix + "/" + filepath.ToSlash(rel),
			Host:  file,
		})
	}
	return mappings, nil
}

func (s *Synthesizer) excluded(path string) bool {
	for _, re := range s.exclusions {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Synthesize expands raw in order into an immutable spec. Duplicates are kept.
func (s *Synthesizer) Synthesize(raw []domain.PathMapping, hostRoot, guestRoot string) domain.VfsImageSpec {
	expanded := make([]domain.PathMapping, 0, len(raw))
	for _, m := range raw {
		expanded = append(expanded, s.Expand(m, hostRoot, guestRoot))
	}
	return domain.NewVfsImageSpec(expanded)
}
