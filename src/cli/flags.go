package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/chataigne/catalog-validator/src/config"
	"github.com/chataigne/catalog-validator/src/validation"
	flag "github.com/spf13/pflag"
)

// SubCommand represents CLI subcommands
type SubCommand string

const (
	ValidateSubCommand   SubCommand = "validate"
	SuggestRefSubCommand SubCommand = "suggest-ref"
)

var KnownSubCommands = []SubCommand{ValidateSubCommand, SuggestRefSubCommand}

// OutputFormat selects how the report is printed to stdout.
type OutputFormat string

const (
	TextFormat OutputFormat = "text"
	JSONFormat OutputFormat = "json"
)

var KnownFormats = []OutputFormat{TextFormat, JSONFormat}

// ValidateConfig holds configuration for the validate command
type ValidateConfig struct {
	CatalogPath string
	OutputDir   string
	ConfigPath  string
	Profile     validation.Profile
	Format      OutputFormat
	Workers     int
	NoColor     bool
}

// Flags holds all CLI flags and configuration
type Flags struct {
	SubCommand     SubCommand
	LogLevel       slog.Level
	ValidateConfig ValidateConfig
	Refs           []string
	NoColor        bool
	ShowHelp       bool
	ShowVersion    bool
}

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseFlags parses command line arguments, including the program name at args[0].
// Help and version requests are reported through ShowHelp and ShowVersion.
func ParseFlags(args []string) (*Flags, error) {
	flags := &Flags{}

	// Global flags
	defaults := flag.NewFlagSet("catalog-validator", flag.ContinueOnError)
	defaults.BoolVarP(&flags.ShowHelp, "help", "h", false, "print this help and exit")
	defaults.BoolVarP(&flags.ShowVersion, "version", "V", false, "print program version and exit")
	defaults.BoolVar(&flags.NoColor, "no-color", false, "disable coloured output")

	var logLevelStr string
	defaults.StringVar(&logLevelStr, "log-level", config.EnvOr(config.EnvLogLevel, "info"), "verbosity level. one of: debug, info, warn, error")

	// Determine subcommand
	var subcommand string
	if len(args) > 1 {
		subcommand = args[1]
	}

	var flagset *flag.FlagSet
	validateConfig := ValidateConfig{}
	var profileStr, formatStr string

	switch subcommand {
	case string(ValidateSubCommand):
		flagset = flag.NewFlagSet("validate", flag.ContinueOnError)
		flagset.StringVar(&formatStr, "format", string(TextFormat), "report format printed to stdout. one of: text, json")
		flagset.StringVar(&profileStr, "profile", config.EnvOr(config.EnvProfile, ""), "rule profile, overrides the config file. one of: strict, lax")
		flagset.StringVar(&validateConfig.ConfigPath, "config", "", "YAML rules file (default: $"+config.EnvConfigPath+")")
		flagset.IntVar(&validateConfig.Workers, "workers", 4, "number of rule groups run concurrently")
		flagset.AddFlagSet(defaults)

	case string(SuggestRefSubCommand):
		flagset = flag.NewFlagSet("suggest-ref", flag.ContinueOnError)
		flagset.AddFlagSet(defaults)

	default:
		flagset = defaults
	}
	flagset.SetOutput(io.Discard)
	flagset.Usage = func() {}

	// Parse flags
	if err := flagset.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if flags.ShowHelp || flags.ShowVersion {
		return flags, nil
	}

	// Validate subcommand
	if subcommand == "" {
		return nil, errors.New("no subcommand given")
	}
	if !slices.Contains(KnownSubCommands, SubCommand(subcommand)) {
		return nil, fmt.Errorf("unknown subcommand: %s", subcommand)
	}

	logLevel, exists := logLevelMap[logLevelStr]
	if !exists {
		return nil, fmt.Errorf("unknown log level: %s", logLevelStr)
	}

	// positional arguments after the program name and subcommand
	positional := flagset.Args()[2:]

	switch SubCommand(subcommand) {
	case ValidateSubCommand:
		if len(positional) < 1 || len(positional) > 2 {
			return nil, errors.New("usage: validate <catalog.json> [output-dir]")
		}
		validateConfig.CatalogPath = positional[0]
		if len(positional) == 2 {
			validateConfig.OutputDir = positional[1]
		}

		validateConfig.Format = OutputFormat(formatStr)
		if !slices.Contains(KnownFormats, validateConfig.Format) {
			return nil, fmt.Errorf("unknown format: %s", formatStr)
		}

		validateConfig.Profile = validation.Profile(profileStr)
		if profileStr != "" && !slices.Contains(validation.KnownProfiles, validateConfig.Profile) {
			return nil, fmt.Errorf("unknown profile: %s", profileStr)
		}

		if validateConfig.Workers < 1 {
			return nil, fmt.Errorf("workers must be >= 1, got %d", validateConfig.Workers)
		}
		validateConfig.NoColor = flags.NoColor

	case SuggestRefSubCommand:
		if len(positional) == 0 {
			return nil, errors.New("usage: suggest-ref <ref>...")
		}
		flags.Refs = positional
	}

	// Assign parsed values
	flags.SubCommand = SubCommand(subcommand)
	flags.LogLevel = logLevel
	flags.ValidateConfig = validateConfig

	return flags, nil
}

// PrintUsage prints usage information
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: catalog-validator <validate|suggest-ref> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  validate <catalog.json> [output-dir]   Validate a catalog and print a report")
	fmt.Fprintln(w, "  suggest-ref <ref>...                   Print the UPPERCASE_SNAKE_CASE form of each ref")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -h, --help               print this help and exit")
	fmt.Fprintln(w, "  -V, --version            print program version and exit")
	fmt.Fprintln(w, "      --log-level string   verbosity level. one of: debug, info, warn, error (default \"info\")")
	fmt.Fprintln(w, "      --no-color           disable coloured output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate options:")
	fmt.Fprintln(w, "      --format string      report format printed to stdout. one of: text, json (default \"text\")")
	fmt.Fprintln(w, "      --profile string     rule profile, overrides the config file. one of: strict, lax")
	fmt.Fprintln(w, "      --config string      YAML rules file (default: $"+config.EnvConfigPath+")")
	fmt.Fprintln(w, "      --workers int        number of rule groups run concurrently (default 4)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 valid, 1 invalid, 2 file missing, unparseable or usage error")
}
