package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/money/parser"
)

// DoctorCmd provides doctor utilities for debugging ledger files.
type DoctorCmd struct {
	Blocks BlocksCmd `cmd:"" help:"Show how a ledger file is split into blocks for parsing."`
	Dump   DumpCmd   `cmd:"" help:"Dump the parsed syntax tree of a ledger file."`
}

// BlocksCmd shows the blocks a ledger file is split into.
type BlocksCmd struct {
	File FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the blocks command.
func (cmd *BlocksCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.Source()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Format: KIND lines "first line"
	for _, block := range parser.Blocks(content, parser.WithDateLayout(globals.DateLayout)) {
		text := content[block.Start:block.End]
		lines := bytes.Count(text, []byte{'\n'})
		first, _, _ := bytes.Cut(text, []byte{'\n'})

		_, _ = fmt.Fprintf(ctx.Stdout, "%-12s %d-%d    %q\n",
			block.Kind.String(),
			block.Line,
			block.Line+lines,
			bytes.TrimRight(first, "\r"))
	}

	return nil
}

// DumpCmd prints the syntax tree of a ledger file.
type DumpCmd struct {
	File FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	ldr, err := globals.loader()
	if err != nil {
		return err
	}

	result, err := cmd.File.Load(context.Background(), ldr)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(sourcesOf(result)).Render(err))
		return failed("parse error")
	}

	repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(result.Ledger)
	return nil
}
