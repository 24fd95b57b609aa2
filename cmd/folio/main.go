// Command folio prints a one-shot view of the portfolio to the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

var logLevel = flag.String("log", "warn", "log level (debug, info, warn, error)")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "")
	}

	decimal.MarshalJSONWithoutQuotes = true

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
