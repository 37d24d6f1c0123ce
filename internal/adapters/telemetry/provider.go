// Package telemetry traces pipeline stages with OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/rbwasm/internal/core/ports"
)

var (
	_ ports.Tracer = (*OTelTracer)(nil)
	_ ports.Span   = (*OTelSpan)(nil)
)

// CachedAttribute marks spans whose work was satisfied by the cache.
const CachedAttribute = "rbwasm.cached"

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// Every span is mirrored by a progress vertex of the given telemetry recorder.
type OTelTracer struct {
	provider  *sdktrace.TracerProvider
	tracer    trace.Tracer
	telemetry ports.Telemetry
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
// Additional span processors receive every span next to the default ones.
func NewOTelTracer(name string, telemetry ports.Telemetry, processors ...sdktrace.SpanProcessor) *OTelTracer {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	provider := sdktrace.NewTracerProvider(opts...)

	return &OTelTracer{
		provider:  provider,
		tracer:    provider.Tracer(name),
		telemetry: telemetry,
	}
}

// Start creates a new span and its progress vertex.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	ctx, vertex := t.telemetry.Record(ctx, name)
	return ctx, &OTelSpan{span: span, vertex: vertex}
}

// Shutdown flushes and stops the span processors.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span   trace.Span
	vertex ports.Vertex

	mu  sync.Mutex
	err error
}

// End completes the span and its vertex.
func (s *OTelSpan) End() {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()

	s.vertex.Complete(err)
	s.span.End()
}

// RecordError marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// MarkCached records a cache hit on the span and its vertex.
func (s *OTelSpan) MarkCached() {
	s.vertex.Cached()
	s.span.SetAttributes(attribute.Bool(CachedAttribute, true))
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
