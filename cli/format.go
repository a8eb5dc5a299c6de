package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/money/formatter"
)

type FormatCmd struct {
	File            FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	CurrencyColumn  int         `help:"Column amounts are aligned to (auto-calculated from content if 0)." default:"0"`
	Indent          int         `help:"Number of spaces postings are indented with." default:"4"`
	InferredAmounts bool        `help:"Write out amounts that were inferred by balancing."`
	Write           bool        `help:"Write the result back to the file instead of stdout." short:"w"`
	Yes             bool        `help:"Do not ask for confirmation before writing." short:"y"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Write && cmd.File.IsStdin() {
		return fmt.Errorf("cannot write back to stdin")
	}

	ldr, err := globals.loader()
	if err != nil {
		return err
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), "format "+cmd.File.Name(), ctx.Stderr)
	defer reportTelemetry()

	result, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(sourcesOf(result)).Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		return failed("parse error")
	}

	opts := []formatter.Option{
		formatter.WithIndentation(cmd.Indent),
		formatter.WithInferredAmounts(cmd.InferredAmounts),
	}
	if cmd.CurrencyColumn > 0 {
		opts = append(opts, formatter.WithCurrencyColumn(cmd.CurrencyColumn))
	}

	var buf bytes.Buffer
	if err := formatter.New(opts...).Format(result.Ledger, &buf); err != nil {
		return err
	}

	if !cmd.Write {
		_, err := ctx.Stdout.Write(buf.Bytes())
		return err
	}

	if bytes.Equal(buf.Bytes(), result.Sources[cmd.File.Filename]) {
		printSuccess(ctx.Stdout, fmt.Sprintf("%s is already formatted", pathStyle.Render(cmd.File.Filename)))
		return nil
	}

	if !cmd.Yes {
		confirm, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.File.Filename))
		if err != nil {
			return err
		}
		if !confirm {
			printInfof(ctx.Stderr, "Left %s unchanged (use --yes to skip this question)", pathStyle.Render(cmd.File.Filename))
			return failed("file left unchanged")
		}
	}

	info, err := os.Stat(cmd.File.Filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.File.Filename, buf.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.File.Filename, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Formatted %s", pathStyle.Render(cmd.File.Filename)))
	return nil
}
