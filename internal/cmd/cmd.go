package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/alecthomas/kong"
	"github.com/printx/pxologs/internal/cmd/logs"
	"github.com/printx/pxologs/internal/cmd/version"
	"github.com/printx/pxologs/internal/config"
	"github.com/printx/pxologs/internal/logservice"
	"github.com/printx/pxologs/internal/logservice/cli"
	"github.com/printx/pxologs/internal/logservice/sdk"
	"github.com/printx/pxologs/internal/pxologs"
	"github.com/printx/pxologs/internal/status"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
)

// HandleErr prints err, with its help message when it has one, and exits with a non-zero status.
func HandleErr(err error) {
	if err == nil {
		return
	}

	pterm.Error.Println(err)

	var errParse *kong.ParseError
	if errors.As(err, &errParse) {
		_ = kong.DefaultHelpPrinter(kong.HelpOptions{}, errParse.Context)
	}

	var e *pxologs.Error
	if errors.As(err, &e) {
		pterm.Println()
		pterm.Info.Println(e.Help())
	}

	os.Exit(1)
}

type verbose bool

func (v verbose) BeforeApply() error {
	pterm.EnableDebugMessages()
	return nil
}

type Cmd struct {
	Get     logs.GetCmd   `cmd:"" help:"Get the N most recent log streams of one or more functions."`
	Purge   logs.PurgeCmd `cmd:"" help:"Remove every log stream of one or more functions."`
	Version version.Cmd   `cmd:"" help:"Display version information."`

	Env         string  `short:"e" default:"Qa" help:"Deployment environment, e.g. Qa, Dev or Prod."`
	Profile     string  `short:"p" default:"default" help:"AWS credential profile."`
	Region      string  `short:"r" help:"AWS region. Selects the locale when --locale is not set."`
	Locale      string  `help:"Locale code used in log group names, e.g. UsOh or UsOr."`
	Transport   string  `help:"How to reach CloudWatch Logs: sdk or cli. Defaults to PXOLOGS_TRANSPORT or sdk."`
	OutputDir   string  `type:"path" help:"Directory artifacts are written to. Defaults to the working directory."`
	FailOnError bool    `help:"Exit with a non-zero status when any target fails."`
	Verbose     verbose `short:"v" help:"Enable verbose output."`
}

// AfterApply resolves the run configuration from the flags and environment and binds it for the commands.
// The log service factory is bound as a provider so only commands that talk to CloudWatch resolve the transport.
func (c *Cmd) AfterApply(kCtx *kong.Context, env *config.Env) error {
	loc, err := env.Location()
	if err != nil {
		return fmt.Errorf("%w: %w", pxologs.ErrTimezone, err)
	}

	transport := c.Transport
	if transport == "" {
		transport = env.Transport
	}

	kCtx.Bind(config.Options{
		Env:         c.Env,
		Profile:     c.Profile,
		Region:      c.Region,
		Locale:      c.Locale,
		OutputDir:   c.OutputDir,
		FailOnError: c.FailOnError,
		Location:    loc,
	})
	if err := kCtx.BindToProvider(func() (logservice.Factory, error) {
		return NewFactory(transport, env.AWSCLI)
	}); err != nil {
		return err
	}
	kCtx.BindTo(afero.NewOsFs(), (*afero.Fs)(nil))
	kCtx.Bind(status.NewPTerm(os.Stdout, os.Stderr))

	return nil
}

// lookPath is exec.LookPath, redefined here for testing purposes.
var lookPath = exec.LookPath

// NewFactory returns the log service factory for the named transport.
func NewFactory(transport, awsCLI string) (logservice.Factory, error) {
	switch transport {
	case config.TransportSDK:
		return func(ctx context.Context, settings logservice.Settings) (logservice.Client, error) {
			client, err := sdk.NewFromSettings(ctx, settings)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", pxologs.ErrAWSConfig, err)
			}
			return client, nil
		}, nil
	case config.TransportCLI:
		path, err := lookPath(awsCLI)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pxologs.ErrAWSCLI, err)
		}
		return cli.NewFactory(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", pxologs.ErrTransport, transport)
	}
}
