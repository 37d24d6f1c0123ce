package domain

import "path/filepath"

// Toolchain locates the staged cross compilation tools.
type Toolchain struct {
	// SDKRoot is the extracted wasi-sdk directory.
	SDKRoot string
	// Version is the wasi-sdk release. It is part of every BuildInput.
	Version string
	// WasmOpt is the resolved path of the wasm-opt binary.
	WasmOpt string
	// VfsLibrary is the path of libwasi_vfs.a.
	VfsLibrary string
}

// CC returns the C compiler.
func (t Toolchain) CC() string {
	return filepath.Join(t.SDKRoot, "bin", "clang")
}

// LD returns the wasm linker.
func (t Toolchain) LD() string {
	return filepath.Join(t.SDKRoot, "bin", "wasm-ld")
}

// AR returns the archiver.
func (t Toolchain) AR() string {
	return filepath.Join(t.SDKRoot, "bin", "llvm-ar")
}

// Ranlib returns the archive indexer.
func (t Toolchain) Ranlib() string {
	return filepath.Join(t.SDKRoot, "bin", "llvm-ranlib")
}

// Sysroot returns the WASI sysroot.
func (t Toolchain) Sysroot() string {
	return filepath.Join(t.SDKRoot, "share", "wasi-sysroot")
}

// SysrootLib returns the library directory of the WASI sysroot.
func (t Toolchain) SysrootLib() string {
	return filepath.Join(t.Sysroot(), "lib", "wasm32-wasi")
}
