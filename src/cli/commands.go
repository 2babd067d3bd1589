package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/chataigne/catalog-validator/src/config"
	"github.com/chataigne/catalog-validator/src/report"
	"github.com/chataigne/catalog-validator/src/validation"
)

// Process exit codes
const (
	ExitValid   = 0
	ExitInvalid = 1
	ExitFailure = 2
)

// CommandHandler handles CLI commands
type CommandHandler struct {
	stdout io.Writer
	stderr io.Writer
}

// NewCommandHandler creates a new command handler writing reports to stdout
// and failures to stderr.
func NewCommandHandler(stdout, stderr io.Writer) *CommandHandler {
	return &CommandHandler{stdout: stdout, stderr: stderr}
}

// Validate executes the validate command and returns the process exit code.
func (h *CommandHandler) Validate(cfg ValidateConfig) int {
	slog.Info("starting validate command", "catalog", cfg.CatalogPath, "format", cfg.Format)

	rules, err := config.Load(cfg.ConfigPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		fmt.Fprintf(h.stderr, "error: %v\n", err)
		return ExitFailure
	}

	opts := validation.Options{
		Profile:            validation.Profile(rules.Profile),
		HighPriceThreshold: rules.HighPriceThreshold,
		SuggestionCutoff:   rules.SuggestionCutoff,
		ImageNameLimit:     rules.Report.ImageNameLimit,
		Workers:            cfg.Workers,
	}
	if cfg.Profile != "" {
		opts.Profile = cfg.Profile
	}

	result, err := validation.NewValidator(opts).ValidateFile(cfg.CatalogPath)
	switch {
	case errors.Is(err, validation.ErrFileNotFound):
		fmt.Fprintf(h.stderr, "error: file not found: %s\n", cfg.CatalogPath)
		return ExitFailure
	case errors.Is(err, validation.ErrParse):
		fmt.Fprintf(h.stderr, "error: %s is not valid JSON: %v\n", cfg.CatalogPath, err)
		return ExitFailure
	case err != nil:
		fmt.Fprintf(h.stderr, "error: %v\n", err)
		return ExitFailure
	}

	rep := report.Build(result)

	switch cfg.Format {
	case JSONFormat:
		err = report.RenderJSON(h.stdout, rep)
	default:
		err = report.RenderText(h.stdout, rep, report.RenderOptions{
			ErrorLimit:      rules.Report.ErrorLimit,
			WarningLimit:    rules.Report.WarningLimit,
			ImageGroupLimit: rules.Report.ImageGroupLimit,
			ImageNameLimit:  rules.Report.ImageNameLimit,
			Color:           !cfg.NoColor,
		})
	}
	if err != nil {
		slog.Error("failed to print report", "error", err)
		return ExitFailure
	}

	if cfg.OutputDir != "" {
		path, err := report.WriteFile(rep, cfg.OutputDir)
		if err != nil {
			slog.Error("failed to write report", "error", err)
			fmt.Fprintf(h.stderr, "error: %v\n", err)
			return ExitFailure
		}
		fmt.Fprintf(h.stderr, "report written to %s\n", path)
	}

	if rep.Verdict == report.Invalid {
		return ExitInvalid
	}
	return ExitValid
}

// SuggestRef executes the suggest-ref command, printing one line per ref.
func (h *CommandHandler) SuggestRef(refs []string) int {
	for _, ref := range refs {
		if validation.IsValidRef(ref) {
			fmt.Fprintf(h.stdout, "%q -> %s (valid)\n", ref, ref)
			continue
		}
		fmt.Fprintf(h.stdout, "%q -> %s\n", ref, validation.SuggestRef(ref))
	}
	return ExitValid
}
