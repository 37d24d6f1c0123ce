package ports

import "context"

// ModuleVerifier checks the produced executable.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type ModuleVerifier interface {
	// Verify returns an error unless path is a valid WebAssembly command module.
	Verify(ctx context.Context, path string) error
}
