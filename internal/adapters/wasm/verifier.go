// Package wasm checks produced executables with the wazero runtime.
package wasm

import (
	"context"
	"os"

	"github.com/tetratelabs/wazero"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

// EntryPoint is the export every WASI command module provides.
const EntryPoint = "_start"

var _ ports.ModuleVerifier = (*Verifier)(nil)

// Verifier implements ports.ModuleVerifier.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify compiles the module at path and checks that it exports the WASI entry point.
// The module is never instantiated.
func (v *Verifier) Verify(ctx context.Context, path string) error {
	bin, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrVerifyFailed.Error()), "path", path)
	}

	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer func() { _ = r.Close(ctx) }()

	compiled, err := r.CompileModule(ctx, bin)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrVerifyFailed.Error()), "path", path)
	}
	defer func() { _ = compiled.Close(ctx) }()

	if _, ok := compiled.ExportedFunctions()[EntryPoint]; !ok {
		err := zerr.With(zerr.New("missing export"), "export", EntryPoint)
		return zerr.With(zerr.Wrap(err, domain.ErrVerifyFailed.Error()), "path", path)
	}
	return nil
}
