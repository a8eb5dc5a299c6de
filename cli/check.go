package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/money/errors"
	"github.com/robinvdvleuten/money/ledger"
	"github.com/robinvdvleuten/money/loader"
)

type CheckCmd struct {
	File      FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Watch     bool        `help:"Check again every time the file changes." short:"w"`
	Tolerance []string    `help:"Residual tolerated per commodity, as COMMODITY:AMOUNT (use '*' for every commodity)." placeholder:"COMMODITY:AMOUNT"`
	JSON      bool        `help:"Write errors as JSON to stdout."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	ldr, err := globals.loader()
	if err != nil {
		return err
	}
	tolerance, err := ledger.ParseToleranceConfig(cmd.Tolerance)
	if err != nil {
		return err
	}

	if cmd.Watch {
		return cmd.watch(ctx, ldr, tolerance)
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), "check "+cmd.File.Name(), ctx.Stderr)
	defer reportTelemetry()

	result, err := cmd.File.Load(runCtx, ldr)
	if !cmd.report(runCtx, ctx, result, err, tolerance) {
		return failed("ledger has errors")
	}
	return nil
}

// watch checks the file on every change until interrupted.
func (cmd *CheckCmd) watch(ctx *kong.Context, ldr *loader.Loader, tolerance *ledger.ToleranceConfig) error {
	if cmd.File.IsStdin() {
		return fmt.Errorf("cannot watch stdin")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printInfof(ctx.Stderr, "Watching %s (press Ctrl+C to stop)", pathStyle.Render(cmd.File.Filename))

	return ldr.Watch(runCtx, func(result *loader.Result, err error) {
		cmd.report(runCtx, ctx, result, err, tolerance)
	}, cmd.File.Filename)
}

// report checks the outcome of loading and prints it. It returns whether the
// check passed.
func (cmd *CheckCmd) report(runCtx context.Context, ctx *kong.Context, result *loader.Result, err error, tolerance *ledger.ToleranceConfig) bool {
	sources := sourcesOf(result)
	if err != nil {
		cmd.printErrors(ctx, sources, err)
		printError(ctx.Stderr, "parse error")
		return false
	}

	l := ledger.New(ledger.WithTolerance(tolerance))
	if err := l.Process(runCtx, result.Ledger); err != nil {
		var validationErrors *ledger.ValidationErrors
		if !stdErrors.As(err, &validationErrors) {
			printError(ctx.Stderr, err.Error())
			return false
		}
		cmd.printErrors(ctx, sources, validationErrors)
		printError(ctx.Stderr, fmt.Sprintf("%d validation error(s) found", len(validationErrors.Errors)))
		return false
	}

	summary := result.Ledger.Summarize()
	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%d transactions, %d accounts, %d commodities)",
		len(result.Ledger.Transactions), len(summary.Accounts), len(summary.Commodities)))
	return true
}

func (cmd *CheckCmd) printErrors(ctx *kong.Context, sources map[string][]byte, err error) {
	if cmd.JSON {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll([]error{err}))
		return
	}

	_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(sources).Render(err))
	_, _ = fmt.Fprintln(ctx.Stderr)
}
