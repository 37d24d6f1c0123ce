package domain

import (
	"encoding/binary"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultTarget is the target triple every native build is configured for.
	DefaultTarget = "wasm32-unknown-wasi"

	// EmbedRoot is the guest directory under which installed trees are staged.
	EmbedRoot = "/embd-root"

	// InterpreterPrefix is the configure prefix of the interpreter build.
	InterpreterPrefix = EmbedRoot + "/ruby"
)

// Field tags of the canonical BuildInput encoding. Values are part of the
// on-disk cache layout and must never be renumbered.
const (
	tagSource byte = iota + 1
	tagStackSize
	tagFeatures
	tagExtraCFlags
	tagTarget
	tagToolchain
	tagTransientHeap
	tagDependencies
)

// BuildInput holds every value that influences the bytes produced by a native build.
type BuildInput struct {
	Source BuildSource
	// StackSize is the asyncify frame buffer size compiled into the runtime.
	StackSize int
	// Features is the set of enabled extensions. Order and duplicates are ignored.
	Features []string
	// ExtraCFlags are appended to CFLAGS in order.
	ExtraCFlags []string
	Target      string
	// ToolchainVersion identifies the cross compiler the build is produced with.
	ToolchainVersion string
	// TransientHeapSize is passed as -DTRANSIENT_HEAP_TOTAL_SIZE when set.
	TransientHeapSize string
	// Dependencies are install directories of other builds this one links against.
	Dependencies []string
}

// NormalizedFeatures returns the features sorted and de-duplicated.
func (in BuildInput) NormalizedFeatures() []string {
	features := slices.Clone(in.Features)
	slices.Sort(features)
	return slices.Compact(features)
}

// Canonical returns the unambiguous byte encoding of the input.
// Each field is tagged and every string is length prefixed, so two distinct
// inputs never share an encoding.
func (in BuildInput) Canonical() []byte {
	buf := make([]byte, 0, 256)

	buf = append(buf, tagSource)
	buf = binary.AppendUvarint(buf, uint64(in.Source.Kind))
	buf = appendString(buf, in.Source.Owner)
	buf = appendString(buf, in.Source.Repo)
	buf = appendString(buf, in.Source.Ref)
	buf = appendString(buf, in.Source.Path)

	buf = append(buf, tagStackSize)
	buf = binary.AppendVarint(buf, int64(in.StackSize))

	buf = append(buf, tagFeatures)
	buf = appendStrings(buf, in.NormalizedFeatures())

	buf = append(buf, tagExtraCFlags)
	buf = appendStrings(buf, in.ExtraCFlags)

	buf = append(buf, tagTarget)
	buf = appendString(buf, in.Target)

	buf = append(buf, tagToolchain)
	buf = appendString(buf, in.ToolchainVersion)

	buf = append(buf, tagTransientHeap)
	buf = appendString(buf, in.TransientHeapSize)

	buf = append(buf, tagDependencies)
	buf = appendStrings(buf, in.Dependencies)

	return buf
}

// FrameBufferDefine returns the preprocessor flag carrying the asyncify frame buffer size.
func (in BuildInput) FrameBufferDefine() string {
	return "-DRB_WASM_SUPPORT_FRAME_BUFFER_SIZE=" + strconv.Itoa(in.StackSize)
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendStrings(buf []byte, ss []string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(ss)))
	for _, s := range ss {
		buf = appendString(buf, s)
	}
	return buf
}

// BuildResult describes a completed native build.
type BuildResult struct {
	InstallDir string
	Cached     bool
	// Prefix is the configure prefix, e.g. "/embd-root/ruby".
	Prefix string
}

// InstalledRoot returns the host directory holding the installed tree.
func (r BuildResult) InstalledRoot() string {
	return filepath.Join(r.InstallDir, strings.TrimPrefix(r.Prefix, "/"))
}

// GuestRoot returns the guest directory the installed tree is mapped to.
func (r BuildResult) GuestRoot() string {
	root := strings.TrimPrefix(r.Prefix, EmbedRoot)
	if root == "" {
		return "/"
	}
	return root
}
