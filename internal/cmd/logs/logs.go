package logs

import (
	"context"
	"fmt"

	"github.com/printx/pxologs/internal/artifact"
	"github.com/printx/pxologs/internal/config"
	"github.com/printx/pxologs/internal/logservice"
	"github.com/printx/pxologs/internal/pipeline"
	"github.com/printx/pxologs/internal/pxologs"
	"github.com/printx/pxologs/internal/status"
	"github.com/printx/pxologs/internal/target"
	"github.com/printx/pxologs/internal/trace"
	"github.com/spf13/afero"
)

// GetCmd retrieves the most recent streams of each target into files.
type GetCmd struct {
	Targets []string `arg:"" name:"target" help:"Function to retrieve, as Name or Name#Count (e.g. DocumentEvent#2)."`
}

func (c *GetCmd) Run(ctx context.Context, opts config.Options, factory logservice.Factory, fs afero.Fs, st *status.Status) error {
	return run(ctx, pipeline.CommandGet, c.Targets, opts, factory, fs, st)
}

// PurgeCmd deletes every stream of each target.
type PurgeCmd struct {
	Targets []string `arg:"" name:"target" help:"Function whose streams are removed. A #Count suffix is accepted and ignored."`
}

func (c *PurgeCmd) Run(ctx context.Context, opts config.Options, factory logservice.Factory, fs afero.Fs, st *status.Status) error {
	return run(ctx, pipeline.CommandPurge, c.Targets, opts, factory, fs, st)
}

func run(ctx context.Context, cmd pipeline.Command, tokens []string, opts config.Options, factory logservice.Factory, fs afero.Fs, st *status.Status) error {
	ctx, span := trace.NewSpan(ctx, string(cmd))
	defer span.End()

	client, err := factory(ctx, opts.Settings())
	if err != nil {
		return trace.CaptureError(ctx, err)
	}

	runner := pipeline.NewRunner(client, artifact.NewWriter(fs, opts.OutputDir), st, opts)
	report := runner.Run(ctx, cmd, target.ParseAll(tokens))

	if opts.FailOnError && report.Failed() {
		failed := 0
		for _, o := range report.Outcomes {
			if o.Err != nil {
				failed++
			}
		}
		return trace.SpanError(span, fmt.Errorf("%w: %d of %d", pxologs.ErrTargetsFailed, failed, len(report.Outcomes)))
	}
	return nil
}
