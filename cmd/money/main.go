package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/robinvdvleuten/money/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

type app struct {
	Version kong.VersionFlag `help:"Show version information"`
	cli.Commands
}

func main() {
	// Environment defaults such as MONEY_DATE_LAYOUT may live in a .env file.
	_ = godotenv.Load()

	result := run(os.Args[1:])
	if result.Err != nil {
		var cmdErr *cli.CommandError
		if !errors.As(result.Err, &cmdErr) {
			_, _ = fmt.Fprintf(os.Stderr, "money: error: %v\n", result.Err)
		}
	}
	os.Exit(result.ExitCode)
}

// run parses args and executes the selected command. Usage errors exit
// through kong directly.
func run(args []string) cli.CommandResult {
	var app app

	parser, err := kong.New(&app,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("money"),
		kong.Description("A plain-text ledger parser, checker and formatter."),
		kong.UsageOnError(),
		kong.Configuration(cli.YAML, cli.ConfigFiles...),
		kong.Bind(&app.Globals),
	)
	if err != nil {
		return cli.Failure(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		var cmdErr *cli.CommandError
		if errors.As(err, &cmdErr) {
			return cli.Failure(cmdErr)
		}
		return cli.Failure(err)
	}

	return cli.Success()
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
