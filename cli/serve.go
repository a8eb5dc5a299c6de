package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/money/ledger"
	"github.com/robinvdvleuten/money/web"
)

// ServeCmd serves a ledger file over a JSON API.
type ServeCmd struct {
	File      string   `help:"Ledger file to serve." arg:"" type:"existingfile"`
	Host      string   `help:"Host to listen on." default:"127.0.0.1"`
	Port      int      `help:"Port to listen on." default:"8080"`
	Watch     bool     `help:"Reload the ledger every time the file changes." short:"w"`
	ReadOnly  bool     `help:"Enable read-only mode (no write operations allowed)." short:"r"`
	Tolerance []string `help:"Residual tolerated per commodity, as COMMODITY:AMOUNT (use '*' for every commodity)." placeholder:"COMMODITY:AMOUNT"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	ldr, err := globals.loader()
	if err != nil {
		return err
	}
	tolerance, err := ledger.ParseToleranceConfig(cmd.Tolerance)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runCtx, reportTelemetry := globals.startTelemetry(runCtx, "serve "+cmd.File, ctx.Stderr)
	defer reportTelemetry()

	server := web.New(cmd.File,
		web.WithAddress(cmd.Host, cmd.Port),
		web.WithLoader(ldr),
		web.WithTolerance(tolerance),
		web.WithReadOnly(cmd.ReadOnly),
		web.WithWatch(cmd.Watch),
	)

	printInfof(ctx.Stderr, "Serving %s on %s (press Ctrl+C to stop)",
		pathStyle.Render(cmd.File), pathStyle.Render(fmt.Sprintf("http://%s:%d", cmd.Host, cmd.Port)))

	return server.Start(runCtx)
}
