package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rbwasm/internal/core/domain"
)

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage    domain.Stage
		expected string
	}{
		{domain.StageInit, "init"},
		{domain.StageToolchainReady, "toolchain"},
		{domain.StageSupportBuilt, "rb-wasm-support"},
		{domain.StageInterpreterBuilt, "ruby"},
		{domain.StageObjectsGenerated, "objects"},
		{domain.StageLinked, "link"},
		{domain.StagePostProcessed, "asyncify"},
		{domain.StageVerified, "verify"},
		{domain.Stage(42), "unknown"},
		{domain.Stage(-1), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stage.String())
		})
	}
}

func TestStage_Order(t *testing.T) {
	assert.Less(t, domain.StageToolchainReady, domain.StageSupportBuilt)
	assert.Less(t, domain.StageSupportBuilt, domain.StageInterpreterBuilt)
	assert.Less(t, domain.StageInterpreterBuilt, domain.StageObjectsGenerated)
	assert.Less(t, domain.StageObjectsGenerated, domain.StageLinked)
	assert.Less(t, domain.StageLinked, domain.StagePostProcessed)
	assert.Less(t, domain.StagePostProcessed, domain.StageVerified)
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    domain.LogLevel
		expected string
	}{
		{domain.LogLevelDebug, "DEBUG"},
		{domain.LogLevelInfo, "INFO"},
		{domain.LogLevelWarn, "WARN"},
		{domain.LogLevelError, "ERROR"},
		{domain.LogLevel(999), "INFO"}, // Default case
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}
