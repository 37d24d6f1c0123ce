package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// MagicPrefix is the path token that stands for the interpreter root on either side of a mapping.
	MagicPrefix = "@ruby_root"

	mappingSeparator = "::"
)

// DefaultExclusions are the patterns, matched against absolute host paths,
// of installed files that are never embedded into the image.
var DefaultExclusions = []string{
	`.*/cache/.*\.gem$`,
	`.*/libruby-static\.a$`,
	`.*/bin/ruby$`,
}

// PathMapping maps a host path into the guest filesystem.
type PathMapping struct {
	Guest string
	Host  string
}

// ParseMapping parses the "GUEST::HOST" form.
func ParseMapping(s string) (PathMapping, error) {
	parts := strings.Split(s, mappingSeparator)
	if len(parts) != 2 {
		return PathMapping{}, zerr.With(ErrInvalidMapping, "mapping", s)
	}
	return PathMapping{Guest: parts[0], Host: parts[1]}, nil
}

// String returns the "GUEST::HOST" form.
func (m PathMapping) String() string {
	return m.Guest + mappingSeparator + m.Host
}

// MarshalText implements encoding.TextMarshaler.
func (m PathMapping) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PathMapping) UnmarshalText(text []byte) error {
	parsed, err := ParseMapping(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// VfsImageSpec is the flattened and expanded list of mappings embedded into the executable.
// Insertion order is preserved and duplicates are kept.
type VfsImageSpec struct {
	mappings []PathMapping
}

// NewVfsImageSpec creates an immutable spec from the given mappings.
func NewVfsImageSpec(mappings []PathMapping) VfsImageSpec {
	return VfsImageSpec{mappings: slices.Clone(mappings)}
}

// Mappings returns a copy of the mappings in insertion order.
func (s VfsImageSpec) Mappings() []PathMapping {
	return slices.Clone(s.mappings)
}

// Len returns the number of mappings.
func (s VfsImageSpec) Len() int {
	return len(s.mappings)
}

// Empty reports whether the spec has no mappings.
func (s VfsImageSpec) Empty() bool {
	return len(s.mappings) == 0
}
