package ports

import "go.trai.ch/rbwasm/internal/core/domain"

// Hasher derives content addresses.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// CacheKey returns "<name>-<hex>" for the given build input. It is pure.
	CacheKey(name string, input domain.BuildInput) string
	// Digest returns a short fingerprint of an image spec.
	Digest(spec domain.VfsImageSpec) string
}
