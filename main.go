package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/printx/pxologs/internal/cmd"
	"github.com/printx/pxologs/internal/config"
	"github.com/printx/pxologs/internal/trace"
	"github.com/pterm/pterm"
)

func main() {
	// ensure the pterm info width matches the other printers
	pterm.Info.Prefix.Text = " INFO  "
	cmd.HandleErr(run())
}

func run() error {
	ctx, cancel := cliContext()
	defer cancel()

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	shutdowns, err := trace.Init(ctx, env.SentryDSN)
	if err != nil {
		pterm.Debug.Printfln("tracing disabled: %s", err)
	}
	defer func() {
		for _, shutdown := range shutdowns {
			shutdown()
		}
	}()

	var root cmd.Cmd
	parser, err := kong.New(
		&root,
		kong.Name("pxologs"),
		kong.Description("Fetch and purge CloudWatch log streams of deployed functions."),
		kong.UsageOnError(),
		kong.Bind(env),
	)
	if err != nil {
		return err
	}
	parsed, err := parser.Parse(os.Args[1:])
	if err != nil {
		return err
	}
	parsed.BindToProvider(bindCtx(ctx))
	return parsed.Run()
}

// get a context that listens for interrupt/shutdown signals.
func cliContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	// listen for shutdown signals
	go func() {
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
		<-signalCh

		cancel()
	}()
	return ctx, cancel
}

// bindCtx exists to allow kong to correctly inject a context.Context into the Run methods on the commands.
func bindCtx(ctx context.Context) func() (context.Context, error) {
	return func() (context.Context, error) {
		return ctx, nil
	}
}
