package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/formatter"
	"github.com/robinvdvleuten/money/ledger"
	"github.com/robinvdvleuten/money/output"
)

// BalancesCmd shows what every account holds after all transactions.
type BalancesCmd struct {
	File      FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Tree      bool        `help:"Show balances as a tree, with parents summing their children." short:"t"`
	Tolerance []string    `help:"Residual tolerated per commodity, as COMMODITY:AMOUNT (use '*' for every commodity)." placeholder:"COMMODITY:AMOUNT"`
}

// balanceRow is one line of the balances report.
type balanceRow struct {
	label   string
	amounts []string
}

func (cmd *BalancesCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), "balances "+cmd.File.Name(), ctx.Stderr)
	defer reportTelemetry()

	result, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(sourcesOf(result)).Render(err))
		return failed("parse error")
	}

	l := ledger.New(ledger.WithTolerance(tolerance))
	if err := l.Process(runCtx, result.Ledger); err != nil {
		var validationErrors *ledger.ValidationErrors
		if !stdErrors.As(err, &validationErrors) {
			return err
		}
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(result.Sources).Render(validationErrors))
		return failed("ledger does not validate")
	}

	var rows []balanceRow
	if cmd.Tree {
		l.BalanceTree().Walk(func(node *ledger.BalanceNode) {
			rows = append(rows, balanceRow{
				label:   strings.Repeat("  ", node.Depth) + node.Name,
				amounts: formatBalance(node.Balance),
			})
		})
	} else {
		for _, account := range l.Accounts() {
			rows = append(rows, balanceRow{
				label:   account.Name,
				amounts: formatBalance(account.Balance),
			})
		}
	}

	printBalances(ctx.Stdout, output.NewStyles(ctx.Stdout), rows)
	return nil
}

// formatBalance formats each commodity of a balance as an amount.
func formatBalance(balance *ledger.Balance) []string {
	entries := balance.Entries()
	amounts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Amount.IsZero() {
			continue
		}
		amounts = append(amounts, formatter.FormatAmount(ast.Amount{
			Value:     entry.Amount.InexactFloat64(),
			Commodity: entry.Commodity,
		}))
	}
	if len(amounts) == 0 {
		amounts = append(amounts, "0")
	}
	return amounts
}

// printBalances writes the rows with amounts right-aligned in one column.
// Balances holding several commodities take one line per commodity.
func printBalances(w io.Writer, styles *output.Styles, rows []balanceRow) {
	labelWidth, amountWidth := 0, 0
	for _, row := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(row.label))
		for _, amount := range row.amounts {
			amountWidth = max(amountWidth, runewidth.StringWidth(amount))
		}
	}

	for _, row := range rows {
		for i, amount := range row.amounts {
			label := ""
			if i == 0 {
				label = row.label
			}
			padding := labelWidth - runewidth.StringWidth(label) + formatter.MinimumSpacing +
				amountWidth - runewidth.StringWidth(amount)
			_, _ = fmt.Fprintf(w, "%s%s%s\n", styles.Account(label), strings.Repeat(" ", padding), styles.Amount(amount))
		}
	}
}
