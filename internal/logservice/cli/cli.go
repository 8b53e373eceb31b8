// Package cli implements logservice.Client by running the aws command line tool.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/printx/pxologs/internal/logservice"
)

// notFoundCode is the error code the aws CLI prints for a missing log group.
const notFoundCode = "ResourceNotFoundException"

var _ logservice.Client = (*Client)(nil)

// Client runs "aws logs ..." sub-commands and decodes their JSON output.
type Client struct {
	exec     CommandExecutor
	settings logservice.Settings
}

// New returns a Client that runs commands through exec.
func New(exec CommandExecutor, settings logservice.Settings) *Client {
	return &Client{exec: exec, settings: settings}
}

// NewFactory returns a logservice.Factory creating Clients backed by the aws binary at binaryPath.
func NewFactory(binaryPath string) logservice.Factory {
	return func(_ context.Context, settings logservice.Settings) (logservice.Client, error) {
		return New(NewAWSExecutor(binaryPath), settings), nil
	}
}

type describeOutput struct {
	LogStreams []struct {
		LogStreamName      string `json:"logStreamName"`
		LastEventTimestamp *int64 `json:"lastEventTimestamp"`
	} `json:"logStreams"`
}

type eventsOutput struct {
	Events []struct {
		Message   string `json:"message"`
		Timestamp int64  `json:"timestamp"`
	} `json:"events"`
}

// ListStreams runs describe-log-streams ordered by last event time, newest first.
func (c *Client) ListStreams(ctx context.Context, group string, limit int) ([]logservice.LogStream, error) {
	const op = "describe-log-streams"
	args := c.args(op,
		"--log-group-name="+group,
		"--order-by=LastEventTime",
		"--descending",
	)
	if limit > 0 {
		args = append(args, fmt.Sprintf("--limit=%d", limit))
	}

	out, err := c.exec.Execute(ctx, args...)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && strings.Contains(exitErr.Stderr, notFoundCode) {
			return nil, logservice.NotFound(group)
		}
		return nil, &logservice.TransportError{Op: op, Err: err}
	}

	var resp describeOutput
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, &logservice.ParseError{Op: op, Err: err}
	}

	streams := make([]logservice.LogStream, 0, len(resp.LogStreams))
	for _, s := range resp.LogStreams {
		ls := logservice.LogStream{Name: s.LogStreamName}
		if s.LastEventTimestamp != nil {
			ls.LastEventTime = time.UnixMilli(*s.LastEventTimestamp)
		}
		streams = append(streams, ls)
	}

	// the CLI paginates on its own, --limit only sets the page size
	if limit > 0 && len(streams) > limit {
		streams = streams[:limit]
	}
	return streams, nil
}

// GetEvents runs get-log-events starting from the head of the stream.
func (c *Client) GetEvents(ctx context.Context, group, stream string) ([]logservice.LogEvent, error) {
	const op = "get-log-events"
	out, err := c.exec.Execute(ctx, c.args(op,
		"--log-group-name="+group,
		"--log-stream-name="+stream,
		"--start-from-head",
	)...)
	if err != nil {
		return nil, &logservice.TransportError{Op: op, Err: err}
	}

	var resp eventsOutput
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, &logservice.ParseError{Op: op, Err: err}
	}

	events := make([]logservice.LogEvent, len(resp.Events))
	for i, e := range resp.Events {
		events[i] = logservice.LogEvent{Message: e.Message, Timestamp: e.Timestamp}
	}
	return events, nil
}

// DeleteStream runs delete-log-stream.
func (c *Client) DeleteStream(ctx context.Context, group, stream string) error {
	const op = "delete-log-stream"
	if _, err := c.exec.Execute(ctx, c.args(op,
		"--log-group-name="+group,
		"--log-stream-name="+stream,
	)...); err != nil {
		return &logservice.TransportError{Op: op, Err: err}
	}
	return nil
}

// args builds the full argument list for a logs sub-command.
func (c *Client) args(op string, rest ...string) []string {
	args := []string{"--profile=" + c.settings.Profile}
	if c.settings.Region != "" {
		args = append(args, "--region="+c.settings.Region)
	}
	args = append(args, "--output=json", "logs", op)
	return append(args, rest...)
}
