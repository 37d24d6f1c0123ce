package cas

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher derives cache keys and image fingerprints.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// CacheKey returns name, a dash, and the hex encoded little-endian lower half
// of the 128-bit SipHash (zero key) of the canonical input encoding.
func (h *Hasher) CacheKey(name string, input domain.BuildInput) string {
	lo, _ := siphash.Hash128(0, 0, input.Canonical())
	sum := binary.LittleEndian.AppendUint64(make([]byte, 0, 8), lo)
	return name + "-" + hex.EncodeToString(sum)
}

// Digest fingerprints the mapping list of an image spec.
func (h *Hasher) Digest(spec domain.VfsImageSpec) string {
	hasher := xxhash.New()
	for _, m := range spec.Mappings() {
		_, _ = hasher.WriteString(m.Guest)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(m.Host)
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}
