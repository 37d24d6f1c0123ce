package domain

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// StageStatus is the terminal outcome of a pipeline stage.
type StageStatus string

const (
	// StageStatusCompleted indicates the stage did its work successfully.
	StageStatusCompleted StageStatus = "completed"
	// StageStatusCached indicates the stage was satisfied by the cache.
	StageStatusCached StageStatus = "cached"
	// StageStatusSkipped indicates the stage had nothing to do.
	StageStatusSkipped StageStatus = "skipped"
	// StageStatusFailed indicates the stage failed.
	StageStatusFailed StageStatus = "failed"
)
