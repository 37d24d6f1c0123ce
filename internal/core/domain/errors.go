package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidBuildSource is returned when a build source descriptor cannot be parsed.
	ErrInvalidBuildSource = zerr.New("invalid build source, expected github:owner/repo@ref or path:dir")

	// ErrInvalidMapping is returned when a path mapping is missing its '::' separator.
	ErrInvalidMapping = zerr.New("invalid path mapping, must contain exactly one double colon ('::')")

	// ErrInvalidStackSize is returned when a stack size is zero where a positive value is required.
	ErrInvalidStackSize = zerr.New("stack size must be positive")

	// ErrUnexpectedArguments is returned when positional arguments are given before "--".
	ErrUnexpectedArguments = zerr.New("unexpected arguments, preset arguments must follow --")

	// ErrMissingOutput is returned when no output path is configured.
	ErrMissingOutput = zerr.New("output path is required")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrWorkspaceCreateFailed is returned when a workspace directory cannot be created.
	ErrWorkspaceCreateFailed = zerr.New("failed to create workspace directory")

	// ErrTempFileFailed is returned when a scoped temporary file cannot be created or written.
	ErrTempFileFailed = zerr.New("failed to create temporary file")

	// ErrTempReleaseFailed is returned when scoped temporary resources cannot be removed.
	ErrTempReleaseFailed = zerr.New("failed to release temporary resources")

	// ErrJournalFailed is returned when stage logs cannot be written.
	ErrJournalFailed = zerr.New("failed to write stage logs")

	// ErrShadowCommandFailed is returned when a shadowing stub for a command cannot be installed.
	ErrShadowCommandFailed = zerr.New("failed to install command shadow")

	// ErrReadDirFailed is returned when a directory cannot be enumerated.
	ErrReadDirFailed = zerr.New("failed to read dir")

	// ErrCacheKeyFailed is returned when a cache key cannot be derived from a build input.
	ErrCacheKeyFailed = zerr.New("failed to derive cache key")

	// ErrDownloadFailed is returned when a remote archive cannot be fetched.
	ErrDownloadFailed = zerr.New("failed to download archive")

	// ErrUnexpectedStatus is returned when a remote archive request returns a non-success status.
	ErrUnexpectedStatus = zerr.New("unexpected HTTP status")

	// ErrExtractFailed is returned when an archive cannot be extracted.
	ErrExtractFailed = zerr.New("failed to extract archive")

	// ErrCommandNotFound is returned when an external binary cannot be located.
	ErrCommandNotFound = zerr.New("command not found")

	// ErrCommandFailed is returned when an external process exits non-zero or fails to spawn.
	ErrCommandFailed = zerr.New("command failed")

	// ErrBootstrapFailed is returned when the source bootstrap step fails.
	ErrBootstrapFailed = zerr.New("bootstrap step failed")

	// ErrConfigureFailed is returned when the configuration step fails.
	ErrConfigureFailed = zerr.New("configure step failed")

	// ErrInstallFailed is returned when the build+install step fails.
	ErrInstallFailed = zerr.New("install step failed")

	// ErrSupportBuildFailed is returned when the support runtime cannot be built.
	ErrSupportBuildFailed = zerr.New("failed to build support runtime")

	// ErrInterpreterBuildFailed is returned when the interpreter cannot be built.
	ErrInterpreterBuildFailed = zerr.New("failed to build interpreter")

	// ErrToolchainInstallFailed is returned when the cross toolchain cannot be staged.
	ErrToolchainInstallFailed = zerr.New("failed to install build toolchain")

	// ErrImageGenerationFailed is returned when an auxiliary object cannot be generated.
	ErrImageGenerationFailed = zerr.New("failed to generate object")

	// ErrLinkFailed is returned when the linker fails.
	ErrLinkFailed = zerr.New("link failed")

	// ErrAsyncifyFailed is returned when the post-link transformation fails.
	ErrAsyncifyFailed = zerr.New("asyncify failed")

	// ErrBuildHookFailed is returned when the user build hook fails.
	ErrBuildHookFailed = zerr.New("build hook failed")

	// ErrVerifyFailed is returned when the final module is not a valid WebAssembly executable.
	ErrVerifyFailed = zerr.New("output module verification failed")

	// ErrBuildExecutionFailed is returned when the pipeline fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
