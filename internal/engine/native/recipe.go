// Package native builds autotools packages for the wasm target.
package native

import (
	"path/filepath"
	"strings"

	"go.trai.ch/rbwasm/internal/core/domain"
)

const (
	// SupportName is the cache name of the support runtime.
	SupportName = "rb-wasm-support"
	// InterpreterName is the cache name of the interpreter.
	InterpreterName = "ruby"
)

// Recipe describes how one package is bootstrapped, configured and installed.
type Recipe struct {
	// Name is the cache name of the build.
	Name string
	// Prefix is the configure prefix. Empty means the install directory itself.
	Prefix string
	// Bootstrap is the script run in the source tree before configure. Empty skips it.
	Bootstrap string
	// Shadowed commands are replaced by no-op stubs during make install.
	Shadowed []string
	// Configure returns the configure arguments.
	Configure func(tc domain.Toolchain, input domain.BuildInput, installDir string) []string
}

// SupportRecipe returns the recipe of the support runtime.
// It installs directly into its install directory.
func SupportRecipe() Recipe {
	return Recipe{
		Name: SupportName,
		Configure: func(tc domain.Toolchain, input domain.BuildInput, installDir string) []string {
			cflags := []string{
				"--sysroot=" + tc.Sysroot(),
				input.FrameBufferDefine(),
			}
			cflags = append(cflags, input.ExtraCFlags...)

			return []string{
				"--host=" + target(input),
				"--prefix=" + installDir,
				"CC=" + tc.CC(),
				"AR=" + tc.AR(),
				"RANLIB=" + tc.Ranlib(),
				"CFLAGS=" + strings.Join(cflags, " "),
			}
		},
	}
}

// InterpreterRecipe returns the recipe of the interpreter.
// Every dependency install directory contributes include and library paths.
func InterpreterRecipe() Recipe {
	return Recipe{
		Name:      InterpreterName,
		Prefix:    domain.InterpreterPrefix,
		Bootstrap: "autogen.sh",
		// clang runs wasm-opt whenever it is on PATH, which breaks the
		// relocation sections of the --relocatable output.
		Shadowed: []string{"wasm-opt"},
		Configure: func(tc domain.Toolchain, input domain.BuildInput, installDir string) []string {
			ldflags := []string{
				"--sysroot=" + tc.Sysroot(),
				"-L" + tc.SysrootLib(),
				"-lwasi-emulated-mman",
				"-lwasi-emulated-signal",
				"-lwasi-emulated-getpid",
				"-lwasi-emulated-process-clocks",
				"-Xlinker",
				"--features=mutable-globals",
			}
			cflags := []string{
				"--sysroot=" + tc.Sysroot(),
				"-D_WASI_EMULATED_SIGNAL",
				"-D_WASI_EMULATED_MMAN",
				"-D_WASI_EMULATED_GETPID",
				"-D_WASI_EMULATED_PROCESS_CLOCKS",
				"-DRB_WASM_SUPPORT_EMULATE_SETJMP",
				input.FrameBufferDefine(),
			}
			for _, dep := range input.Dependencies {
				cflags = append(cflags, "-I"+filepath.Join(dep, "include"))
				ldflags = append(ldflags, "-L"+filepath.Join(dep, "lib"))
			}
			cflags = append(cflags, input.ExtraCFlags...)
			if input.TransientHeapSize != "" {
				cflags = append(cflags, "-DTRANSIENT_HEAP_TOTAL_SIZE="+input.TransientHeapSize)
			}

			return []string{
				"--host=" + target(input),
				"--disable-install-doc",
				"--disable-jit-support",
				"--with-coroutine=asyncify",
				"--with-static-linked-ext",
				"--prefix=" + domain.InterpreterPrefix,
				"--with-destdir=" + installDir,
				"--with-ext=" + strings.Join(input.NormalizedFeatures(), ","),
				"XLDFLAGS=-Xlinker --relocatable",
				"LDFLAGS=" + strings.Join(ldflags, " "),
				"CFLAGS=" + strings.Join(cflags, " "),
				"CC=" + tc.CC(),
				"LD=" + tc.CC(),
				"AR=" + tc.AR(),
				"RANLIB=" + tc.Ranlib(),
			}
		},
	}
}

func target(input domain.BuildInput) string {
	if input.Target == "" {
		return domain.DefaultTarget
	}
	return input.Target
}
