package pipeline

import (
	"context"
	"time"

	"github.com/printx/pxologs/internal/logservice"
	"github.com/printx/pxologs/internal/render"
	"github.com/printx/pxologs/internal/trace"
	"go.opentelemetry.io/otel/attribute"
)

// Enumerate lists the streams of group, newest first.
// A limit of zero lists every stream. Errors from the client are returned unchanged and never retried.
func Enumerate(ctx context.Context, client logservice.Client, group string, limit int) ([]logservice.LogStream, error) {
	ctx, span := trace.NewSpan(ctx, "enumerate streams", attribute.String("group", group), attribute.Int("limit", limit))
	defer span.End()

	streams, err := client.ListStreams(ctx, group, limit)
	if err != nil {
		return nil, trace.SpanError(span, err)
	}
	span.SetAttributes(attribute.Int("streams", len(streams)))
	return streams, nil
}

// Fetch reads every event of the stream from head and renders them into a single block of text.
func Fetch(ctx context.Context, client logservice.Client, group, stream string, loc *time.Location) (string, error) {
	ctx, span := trace.NewSpan(ctx, "fetch events", attribute.String("group", group), attribute.String("stream", stream))
	defer span.End()

	events, err := client.GetEvents(ctx, group, stream)
	if err != nil {
		return "", trace.SpanError(span, err)
	}
	span.SetAttributes(attribute.Int("events", len(events)))
	return render.Render(events, loc), nil
}
