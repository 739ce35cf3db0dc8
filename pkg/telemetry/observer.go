package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yesoreyeram/transect/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry data
// for parse execution events.
type TelemetryObserver struct {
	provider *Provider

	// Track the active span for the in-progress parse
	parseSpan trace.Span

	// Track execution times
	parseStartTime  time.Time
	actionStartTime time.Time
	actionCount     int
}

// NewTelemetryObserver creates a new telemetry observer
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{provider: provider}
}

// OnEvent handles parse events and records telemetry data
func (o *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventParseStart:
		o.handleParseStart(ctx, event)
	case observer.EventParseEnd:
		o.handleParseEnd(ctx, event)
	case observer.EventActionApplied:
		o.handleActionApplied(ctx, event)
	case observer.EventActionRejected:
		o.handleActionRejected(ctx, event)
	}
}

func (o *TelemetryObserver) handleParseStart(ctx context.Context, event observer.Event) {
	_, span := o.provider.Tracer().Start(ctx, "parse.create_passage",
		trace.WithAttributes(
			attribute.String("passage.id", event.PassageID),
		),
	)

	o.parseSpan = span
	o.parseStartTime = event.Timestamp
	o.actionCount = 0
}

func (o *TelemetryObserver) handleParseEnd(ctx context.Context, event observer.Event) {
	duration := time.Since(o.parseStartTime)
	success := event.Status == observer.StatusSuccess

	o.provider.RecordParse(ctx, event.PassageID, duration, success, o.actionCount)

	if o.parseSpan != nil {
		if event.Error != nil {
			o.parseSpan.RecordError(event.Error)
			o.parseSpan.SetStatus(codes.Error, event.Error.Error())
		} else {
			o.parseSpan.SetStatus(codes.Ok, "parse finished")
		}
		o.parseSpan.End()
	}
}

func (o *TelemetryObserver) handleActionApplied(ctx context.Context, event observer.Event) {
	o.actionCount++
	var duration time.Duration
	if !event.StartTime.IsZero() {
		duration = event.Timestamp.Sub(event.StartTime)
	}
	o.provider.RecordAction(ctx, event.ActionKind, duration, true)
}

func (o *TelemetryObserver) handleActionRejected(ctx context.Context, event observer.Event) {
	o.provider.RecordAction(ctx, event.ActionKind, 0, false)
}
