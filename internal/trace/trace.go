package trace

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	sentryotel "github.com/getsentry/sentry-go/otel"
	"github.com/printx/pxologs/internal/build"
	"github.com/pterm/pterm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/printx/pxologs/trace"

var (
	once   sync.Once
	tracer trace.Tracer
)

func NewSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	once.Do(func() {
		tracer = otel.Tracer(tracerName)
	})
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func SpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, redactHome(err.Error()))
	sentry.CaptureException(err)
	return err
}

func CaptureError(ctx context.Context, err error) error {
	span := trace.SpanFromContext(ctx)
	return SpanError(span, err)
}

type Shutdown func()

// Init configures sentry and the otel tracer provider.
// An empty dsn disables sentry reporting, spans are still created.
func Init(ctx context.Context, dsn string) ([]Shutdown, error) {
	if dsn == "" {
		pterm.Debug.Println("Error reporting is disabled")
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		Environment:      "cli",
		Release:          build.Version,
		TracesSampleRate: 1.0,
		// ServerName can be considered PII, hardcode to N/A
		ServerName:            "N/A",
		BeforeSend:            removePII,
		BeforeSendTransaction: removePII,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to initialize sentry: %w", err)
	}

	cleanups := []Shutdown{func() { sentry.Flush(2 * time.Second) }}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			attribute.String("version", build.Version),
		),
	)
	if err != nil {
		return cleanups, fmt.Errorf("unable to create trace resource: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sentryotel.NewSentrySpanProcessor()),
		sdktrace.WithResource(r),
	)
	cleanups = append(cleanups, func() { _ = tracerProvider.Shutdown(ctx) })

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(sentryotel.NewSentryPropagator())

	return cleanups, nil
}

// userHome is the redacted user home directory
const userHome = "[USER_HOME]"

func redactHome(s string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return s
	}
	return strings.ReplaceAll(s, home, userHome)
}

// removePII removes potentially PII information that may be contained within the trace data.
func removePII(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.Message = redactHome(event.Message)

	for i := range event.Exception {
		event.Exception[i].Value = redactHome(event.Exception[i].Value)
	}

	for _, span := range event.Spans {
		span.Name = redactHome(span.Name)
		span.Description = redactHome(span.Description)
	}

	return event
}
