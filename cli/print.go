package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/formatter"
	"github.com/robinvdvleuten/money/output"
)

// PrintCmd prints transactions with their inferred amounts filled in.
type PrintCmd struct {
	File    FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Account string      `help:"Only print transactions posting to accounts starting with this prefix."`
}

func (cmd *PrintCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	ldr, err := globals.loader()
	if err != nil {
		return err
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), "print "+cmd.File.Name(), ctx.Stderr)
	defer reportTelemetry()

	result, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(sourcesOf(result)).Render(err))
		return failed("parse error")
	}
	ast.SortTransactions(result.Ledger)

	styles := output.NewStyles(ctx.Stdout)
	first := true
	for _, txn := range result.Ledger.Transactions {
		if !postsTo(txn, cmd.Account) {
			continue
		}
		if !first {
			_, _ = fmt.Fprintln(ctx.Stdout)
		}
		first = false
		printTransaction(ctx.Stdout, styles, txn)
	}

	return nil
}

func postsTo(txn *ast.Transaction, prefix string) bool {
	if prefix == "" {
		return true
	}
	for _, account := range txn.Accounts() {
		if strings.HasPrefix(account, prefix) {
			return true
		}
	}
	return false
}

// printTransaction writes a transaction in canonical layout with colors.
// Inferred amounts are written dimmed.
func printTransaction(w io.Writer, styles *output.Styles, txn *ast.Transaction) {
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.Date(txn.Date.String()), styles.Payee(txn.Payee))

	width := 0
	for _, posting := range txn.Postings {
		width = max(width, runewidth.StringWidth(posting.Account))
	}

	for _, posting := range txn.Postings {
		indent := strings.Repeat(" ", formatter.DefaultIndentation)
		if posting.Amount == nil {
			_, _ = fmt.Fprintf(w, "%s%s\n", indent, styles.Account(posting.Account))
			continue
		}

		amount := formatter.FormatAmount(*posting.Amount)
		padding := width - runewidth.StringWidth(posting.Account) + formatter.MinimumSpacing
		styled := styles.Amount(amount)
		if posting.Inferred {
			styled = styles.Dim(amount)
		}
		_, _ = fmt.Fprintf(w, "%s%s%s%s\n", indent, styles.Account(posting.Account), strings.Repeat(" ", padding), styled)
	}
}
