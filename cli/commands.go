package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/robinvdvleuten/money/ledger"
	"github.com/robinvdvleuten/money/loader"
	"github.com/robinvdvleuten/money/output"
	"github.com/robinvdvleuten/money/parser"
	"github.com/robinvdvleuten/money/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry  bool   `help:"Show timing telemetry for operations."`
	DateLayout string `help:"Go time layout that transaction dates are written in." default:"2006-01-02" env:"MONEY_DATE_LAYOUT"`
	Policy     string `help:"How to treat postings lists whose missing amount cannot be inferred (${enum})." enum:"strict,lenient" default:"strict" env:"MONEY_BALANCE_POLICY"`
}

// Commands lists the commands of the money tool.
type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse and check a ledger file."`
	Format   FormatCmd   `cmd:"" help:"Format a ledger file to align amounts."`
	Print    PrintCmd    `cmd:"" help:"Print the transactions of a ledger file."`
	Balances BalancesCmd `cmd:"" help:"Show the balance of every account."`
	Serve    ServeCmd    `cmd:"" help:"Serve a ledger file over a JSON API."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging ledger files."`
}

// loader returns a loader parsing with the options selected by the flags.
func (g *Globals) loader() (*loader.Loader, error) {
	policy, err := ledger.ParsePolicy(g.Policy)
	if err != nil {
		return nil, err
	}
	if err := parser.ValidateDateLayout(g.DateLayout); err != nil {
		return nil, err
	}

	return loader.New(loader.WithParserOptions(
		parser.WithDateLayout(g.DateLayout),
		parser.WithBalancePolicy(policy),
	)), nil
}

// startTelemetry starts timing the command when --telemetry is set. The
// returned function ends the timing and writes the report to w.
func (g *Globals) startTelemetry(ctx context.Context, name string, w io.Writer) (context.Context, func()) {
	if !g.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)
	ctx, timer := telemetry.Start(ctx, name)

	return ctx, func() {
		timer.End()
		_, _ = fmt.Fprintln(w)
		collector.Report(w, output.NewStyles(w))
	}
}
