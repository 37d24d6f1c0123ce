package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/rbwasm/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// LogBridge implements sdktrace.SpanProcessor to report span boundaries through the logger.
// Messages are logged at debug level.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug("stage " + s.Name() + " started")
}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	switch {
	case s.Status().Code == codes.Error:
		desc := s.Status().Description
		if desc == "" {
			desc = "stage failed"
		}
		b.logger.Debug(fmt.Sprintf("stage %s failed after %s: %s", s.Name(), elapsed, desc))
	case isCached(s):
		b.logger.Debug(fmt.Sprintf("stage %s cached", s.Name()))
	default:
		b.logger.Debug(fmt.Sprintf("stage %s finished in %s", s.Name(), elapsed))
	}
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}

func isCached(s sdktrace.ReadOnlySpan) bool {
	for _, attr := range s.Attributes() {
		if string(attr.Key) == CachedAttribute {
			return attr.Value.AsBool()
		}
	}
	return false
}
