package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chataigne/catalog-validator/src/cli"
	"github.com/chataigne/catalog-validator/src/config"
	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var APP_VERSION = "unreleased"

func main() {
	// .env values become flag defaults
	config.LoadEnv()

	// Parse command line flags
	flags, err := cli.ParseFlags(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(cli.ExitFailure)
	}

	if flags.ShowHelp {
		cli.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	if flags.ShowVersion {
		fmt.Println(APP_VERSION)
		os.Exit(0)
	}

	if flags.NoColor {
		color.NoColor = true
	}

	// Setup logging
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   flags.LogLevel,
		NoColor: flags.NoColor || !isatty.IsTerminal(os.Stderr.Fd()),
	})))

	handler := cli.NewCommandHandler(os.Stdout, os.Stderr)

	// Execute command
	switch flags.SubCommand {
	case cli.ValidateSubCommand:
		os.Exit(handler.Validate(flags.ValidateConfig))

	case cli.SuggestRefSubCommand:
		os.Exit(handler.SuggestRef(flags.Refs))

	default:
		slog.Error("unknown subcommand", "subcommand", flags.SubCommand)
		os.Exit(cli.ExitFailure)
	}
}
