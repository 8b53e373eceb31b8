// Package logservice defines the log service capability consumed by the pipeline.
// Two implementations exist: sdk (CloudWatch Logs API) and cli (the aws command line tool).
package logservice

import (
	"context"
	"time"
)

//go:generate go tool mockgen --source $GOFILE -destination ./mock/mock.go -package mock

// LogStream is a single stream within a log group.
type LogStream struct {
	Name          string
	LastEventTime time.Time
}

// LogEvent is a single event within a log stream.
type LogEvent struct {
	Message string
	// Timestamp is in milliseconds since the unix epoch.
	Timestamp int64
}

// Client is the set of log service operations the pipeline depends on.
type Client interface {
	// ListStreams returns the streams of group ordered by last event time, newest first.
	// A limit of zero returns every stream.
	ListStreams(ctx context.Context, group string, limit int) ([]LogStream, error)
	// GetEvents returns every event of the stream, oldest first.
	GetEvents(ctx context.Context, group, stream string) ([]LogEvent, error)
	// DeleteStream removes the stream from the group.
	DeleteStream(ctx context.Context, group, stream string) error
}

// Settings selects the account and region a Client talks to.
type Settings struct {
	Profile string
	Region  string
}

// Factory creates a Client for the given settings.
type Factory func(ctx context.Context, settings Settings) (Client, error)
