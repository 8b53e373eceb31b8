// Package pipeline resolves targets to log groups and retrieves or purges their streams.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/printx/pxologs/internal/config"
	"github.com/printx/pxologs/internal/loggroup"
	"github.com/printx/pxologs/internal/logservice"
	"github.com/printx/pxologs/internal/status"
	"github.com/printx/pxologs/internal/target"
	"github.com/printx/pxologs/internal/trace"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Command selects what the Runner does with each target.
type Command string

const (
	CommandGet   Command = "get"
	CommandPurge Command = "purge"
)

// State is the last state a target reached.
type State string

const (
	StateParsed             State = "parsed"
	StateGroupResolved      State = "group resolved"
	StateStreamsEnumerated  State = "streams enumerated"
	StateDone               State = "done"
	StateEnumerationFailed  State = "enumeration failed"
	StateFetchOrWriteFailed State = "fetch or write failed"
	StatePurgeFailed        State = "purge failed"
)

// ArtifactWriter persists the rendered content of the index-th newest stream of a function.
type ArtifactWriter interface {
	Write(env, function string, index int, content string) (string, error)
}

// Outcome is the result of running a command against a single target.
type Outcome struct {
	Target    target.Target
	Group     string
	State     State
	Streams   int
	Artifacts []string
	Purge     PurgeResult
	Err       error
}

// Report holds the outcome of every target, in the order the targets were given.
type Report struct {
	Command  Command
	Outcomes []Outcome
}

// Failed returns true if any target ended in a failure state.
func (r Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Runner drives the get and purge pipelines.
type Runner struct {
	client logservice.Client
	writer ArtifactWriter
	status *status.Status
	opts   config.Options
}

// NewRunner returns a Runner.
func NewRunner(client logservice.Client, writer ArtifactWriter, st *status.Status, opts config.Options) *Runner {
	return &Runner{
		client: client,
		writer: writer,
		status: st,
		opts:   opts,
	}
}

// Run executes cmd for every target concurrently and waits for all of them.
// Targets are independent: a failing target is reported with a prefix naming the command and target
// and never affects its siblings. Nothing bounds the number of concurrent calls, every target and
// every stream of a target is in flight at the same time.
func (r *Runner) Run(ctx context.Context, cmd Command, targets []target.Target) Report {
	ctx, span := trace.NewSpan(ctx, "run targets", attribute.Int("targets", len(targets)))
	defer span.End()

	report := Report{Command: cmd, Outcomes: make([]Outcome, len(targets))}

	// a plain Group, not WithContext: a failed target must not cancel its siblings
	var g errgroup.Group
	for i, t := range targets {
		g.Go(func() error {
			out := r.runTarget(ctx, cmd, t)
			if out.Err != nil {
				r.status.Error.Println(fmt.Sprintf("%s error: %s: %s", cmd, t, out.Err))
			}
			report.Outcomes[i] = out
			return out.Err
		})
	}
	// Wait only returns the first failure, the Report carries all of them
	if err := g.Wait(); err != nil {
		span.RecordError(err)
	}

	return report
}

func (r *Runner) runTarget(ctx context.Context, cmd Command, t target.Target) Outcome {
	ctx, span := trace.NewSpan(ctx, string(cmd)+" target",
		attribute.String("function", t.FunctionName),
		attribute.Int("count", t.Count),
	)
	defer span.End()

	out := Outcome{Target: t, State: StateParsed}
	out.Group = loggroup.Name(r.opts.ResolvedLocale(), r.opts.Env, t.FunctionName)
	out.State = StateGroupResolved
	span.SetAttributes(attribute.String("group", out.Group))

	switch cmd {
	case CommandGet:
		r.get(ctx, &out)
	case CommandPurge:
		r.purge(ctx, &out)
	default:
		out.Err = fmt.Errorf("unknown command: %s", cmd)
	}

	if out.Err != nil {
		trace.SpanError(span, out.Err)
	}
	return out
}

func (r *Runner) get(ctx context.Context, out *Outcome) {
	r.status.Info.Println(fmt.Sprintf("get logs for %s count: %d", out.Group, out.Target.Count))
	r.status.Debug.Println(fmt.Sprintf("Retrieving streams for %s", out.Group))

	streams, err := Enumerate(ctx, r.client, out.Group, out.Target.Count)
	if err != nil {
		out.State = StateEnumerationFailed
		out.Err = err
		return
	}
	out.State = StateStreamsEnumerated
	out.Streams = len(streams)

	if len(streams) == 0 {
		r.status.Warn.Println(fmt.Sprintf("No logs found for %s", out.Group))
		out.State = StateDone
		return
	}

	// index i is always the i-th newest stream, whatever order the fetches complete in
	paths := make([]string, len(streams))
	var g multierror.Group
	for i, s := range streams {
		g.Go(func() error {
			r.status.Debug.Println(fmt.Sprintf("Retrieving events for %s -- %s", out.Group, s.Name))
			content, err := Fetch(ctx, r.client, out.Group, s.Name, r.opts.Location)
			if err != nil {
				return fmt.Errorf("stream %s: %w", s.Name, err)
			}

			path, err := r.writer.Write(r.opts.Env, out.Target.FunctionName, i+1, content)
			if err != nil {
				return fmt.Errorf("stream %s: %w", s.Name, err)
			}
			r.status.Success.Println(fmt.Sprintf("Writing file: %s", path))
			paths[i] = path
			return nil
		})
	}

	if merr := g.Wait(); merr.ErrorOrNil() != nil {
		merr.ErrorFormat = joinErrors
		out.State = StateFetchOrWriteFailed
		out.Err = merr
	} else {
		out.State = StateDone
	}

	for _, p := range paths {
		if p != "" {
			out.Artifacts = append(out.Artifacts, p)
		}
	}
}

func (r *Runner) purge(ctx context.Context, out *Outcome) {
	r.status.Info.Println(fmt.Sprintf("purge logs for %s", out.Group))

	res, err := Purge(ctx, r.client, out.Group, r.status)
	if err != nil {
		out.State = StatePurgeFailed
		out.Err = err
		return
	}
	out.State = StateDone
	out.Purge = res
	out.Streams = res.Deleted + res.Failed
	r.status.Success.Println(fmt.Sprintf("Purged %d of %d streams for %s", res.Deleted, out.Streams, out.Group))
}

// joinErrors formats every stream failure of a target on a single line.
func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
