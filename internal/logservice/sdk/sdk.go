// Package sdk implements logservice.Client on top of the CloudWatch Logs API.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/printx/pxologs/internal/logservice"
)

// maxDescribeLimit is the largest page size describe-log-streams accepts.
const maxDescribeLimit = 50

var _ logservice.Client = (*Client)(nil)

// API is the subset of the CloudWatch Logs client used here.
type API interface {
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
	DeleteLogStream(ctx context.Context, params *cloudwatchlogs.DeleteLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogStreamOutput, error)
}

// Client talks to CloudWatch Logs through the AWS SDK.
type Client struct {
	api API
}

// New returns a Client using the provided API implementation.
func New(api API) *Client {
	return &Client{api: api}
}

// NewFromSettings loads the shared AWS configuration for the profile and region and returns a Client.
// The SDK retryer is disabled, a failed call is reported as is.
func NewFromSettings(ctx context.Context, settings logservice.Settings) (logservice.Client, error) {
	var opts []func(*config.LoadOptions) error
	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}
	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	cfg.Retryer = func() aws.Retryer {
		return aws.NopRetryer{}
	}

	return New(cloudwatchlogs.NewFromConfig(cfg)), nil
}

// ListStreams pages through describe-log-streams until limit streams were collected, or all of them when limit is zero.
func (c *Client) ListStreams(ctx context.Context, group string, limit int) ([]logservice.LogStream, error) {
	input := &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(group),
		OrderBy:      types.OrderByLastEventTime,
		Descending:   aws.Bool(true),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(min(limit, maxDescribeLimit)))
	}

	var streams []logservice.LogStream
	p := cloudwatchlogs.NewDescribeLogStreamsPaginator(c.api, input)
	for p.HasMorePages() {
		output, err := p.NextPage(ctx)
		if err != nil {
			return nil, mapErr("describe-log-streams", group, err)
		}

		for _, s := range output.LogStreams {
			streams = append(streams, toLogStream(s))
		}

		if limit > 0 && len(streams) >= limit {
			return streams[:limit], nil
		}
	}

	return streams, nil
}

// GetEvents reads the stream from head, following forward tokens until they stop changing.
func (c *Client) GetEvents(ctx context.Context, group, stream string) ([]logservice.LogEvent, error) {
	input := &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
		StartFromHead: aws.Bool(true),
	}

	var (
		events        []logservice.LogEvent
		previousToken *string
	)
	p := cloudwatchlogs.NewGetLogEventsPaginator(c.api, input)
	for p.HasMorePages() {
		output, err := p.NextPage(ctx)
		if err != nil {
			return nil, &logservice.TransportError{Op: "get-log-events", Err: err}
		}

		for _, e := range output.Events {
			events = append(events, logservice.LogEvent{
				Message:   aws.ToString(e.Message),
				Timestamp: aws.ToInt64(e.Timestamp),
			})
		}

		// an unchanged token means the end of the stream was reached
		if previousToken != nil && output.NextForwardToken != nil && *previousToken == *output.NextForwardToken {
			break
		}
		previousToken = output.NextForwardToken
	}

	return events, nil
}

// DeleteStream deletes a single stream.
func (c *Client) DeleteStream(ctx context.Context, group, stream string) error {
	_, err := c.api.DeleteLogStream(ctx, &cloudwatchlogs.DeleteLogStreamInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
	})
	if err != nil {
		return &logservice.TransportError{Op: "delete-log-stream", Err: err}
	}
	return nil
}

func toLogStream(s types.LogStream) logservice.LogStream {
	ls := logservice.LogStream{Name: aws.ToString(s.LogStreamName)}
	if s.LastEventTimestamp != nil {
		ls.LastEventTime = time.UnixMilli(*s.LastEventTimestamp)
	}
	return ls
}

// mapErr converts a describe failure, reporting a missing group as logservice.ErrGroupNotFound.
func mapErr(op, group string, err error) error {
	var rnf *types.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return logservice.NotFound(group)
	}
	return &logservice.TransportError{Op: op, Err: err}
}
