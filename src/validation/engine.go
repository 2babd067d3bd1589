package validation

import (
	"fmt"
	"log/slog"

	"github.com/chataigne/catalog-validator/src/types"
	"golang.org/x/sync/errgroup"
)

// Profile selects how strictly optional-looking fields are treated.
type Profile string

const (
	// StrictProfile requires `available`, entity refs, discount levels and
	// option list names everywhere.
	StrictProfile Profile = "strict"
	// LaxProfile checks those fields only when they are present.
	LaxProfile Profile = "lax"
)

var KnownProfiles = []Profile{StrictProfile, LaxProfile}

// DefaultHighPriceThreshold is the product price above which a warning is raised.
const DefaultHighPriceThreshold = 500.0

// Options configures a Validator.
type Options struct {
	Profile            Profile
	HighPriceThreshold float64
	SuggestionCutoff   float64
	ImageNameLimit     int
	Workers            int
}

// DefaultOptions returns the canonical strict configuration.
func DefaultOptions() Options {
	return Options{
		Profile:            StrictProfile,
		HighPriceThreshold: DefaultHighPriceThreshold,
		SuggestionCutoff:   DefaultSuggestionCutoff,
		ImageNameLimit:     DefaultImageNameLimit,
		Workers:            1,
	}
}

// Validator runs the rule groups over a catalog document.
type Validator struct {
	opts Options
}

// NewValidator creates a validator. Zero option values fall back to defaults.
func NewValidator(opts Options) *Validator {
	defaults := DefaultOptions()
	if opts.Profile == "" {
		opts.Profile = defaults.Profile
	}
	if opts.HighPriceThreshold <= 0 {
		opts.HighPriceThreshold = defaults.HighPriceThreshold
	}
	if opts.SuggestionCutoff <= 0 {
		opts.SuggestionCutoff = defaults.SuggestionCutoff
	}
	if opts.ImageNameLimit < 1 {
		opts.ImageNameLimit = defaults.ImageNameLimit
	}
	if opts.Workers < 1 {
		opts.Workers = defaults.Workers
	}
	return &Validator{opts: opts}
}

// findings is the diagnostics produced by one rule group, in document order.
type findings struct {
	errors   []types.Diagnostic
	warnings []types.Diagnostic
}

func (f *findings) errorAt(kind types.DiagnosticType, path, message string) {
	f.errors = append(f.errors, types.Diagnostic{Type: kind, Path: path, Message: message})
}

func (f *findings) warnAt(kind types.DiagnosticType, path, message string) {
	f.warnings = append(f.warnings, types.Diagnostic{Type: kind, Path: path, Message: message})
}

func (f *findings) error(d types.Diagnostic) {
	f.errors = append(f.errors, d)
}

func (f *findings) warn(d types.Diagnostic) {
	f.warnings = append(f.warnings, d)
}

// reference reports an unresolved weak reference with an optional suggestion.
func (f *findings) reference(set *nameSet, value, path, message string, cutoff float64) {
	ok, suggestion := set.resolve(value, cutoff)
	if ok {
		return
	}
	if suggestion != "" {
		message = fmt.Sprintf("%s (did you mean %q?)", message, suggestion)
	}
	f.error(types.Diagnostic{
		Type:       types.InvalidReference,
		Path:       path,
		Message:    message,
		Suggestion: suggestion,
	})
}

// index is the identifier universe shared read-only by all rule groups.
type index struct {
	catalog         *types.Catalog
	opts            Options
	categoryNames   *nameSet
	optionListNames *nameSet
	productNames    *nameSet
	imageGroups     []types.ImageGroup
}

func newIndex(catalog *types.Catalog, opts Options) *index {
	idx := &index{
		catalog:         catalog,
		opts:            opts,
		categoryNames:   newNameSet(),
		optionListNames: newNameSet(),
		productNames:    newNameSet(),
		imageGroups:     duplicateImageGroups(catalog),
	}
	for _, c := range catalog.Categories.Items {
		if c.Name.Ok() && c.Name.Value != "" {
			idx.categoryNames.add(c.Name.Value)
		}
	}
	for _, ol := range catalog.OptionLists.Items {
		if ol.Name.Ok() && ol.Name.Value != "" {
			idx.optionListNames.add(ol.Name.Value)
		}
	}
	for _, p := range catalog.Products.Items {
		if p.Name.Ok() && p.Name.Value != "" {
			idx.productNames.add(p.Name.Value)
		}
	}
	return idx
}

func (idx *index) strict() bool {
	return idx.opts.Profile != LaxProfile
}

// ruleGroup is an independent set of rules over the extracted catalog.
type ruleGroup struct {
	name string
	run  func(*index) findings
}

// ruleGroups is the fixed merge order of the report.
var ruleGroups = []ruleGroup{
	{"catalog", checkCatalog},
	{"categories", checkCategories},
	{"option-lists", checkOptionLists},
	{"options", checkOptions},
	{"products", checkProducts},
	{"deals", checkDeals},
	{"discounts", checkDiscounts},
	{"settings", checkSettings},
	{"images", checkImages},
	{"empty-entities", checkEmptyEntities},
}

// Validate runs every rule group over a parsed JSON document.
// It never fails: every problem is reported as a diagnostic.
func (v *Validator) Validate(doc any) *types.Result {
	root, fatal := checkRoot(doc)
	if fatal != nil {
		slog.Debug("structural gate rejected document", "error", fatal.Message)
		return &types.Result{Errors: []types.Diagnostic{*fatal}, Warnings: []types.Diagnostic{}}
	}

	catalog := extractCatalog(root)
	idx := newIndex(catalog, v.opts)

	results := make([]findings, len(ruleGroups))
	var g errgroup.Group
	g.SetLimit(v.opts.Workers)
	for i, group := range ruleGroups {
		i, group := i, group
		g.Go(func() error {
			results[i] = group.run(idx)
			slog.Debug("rule group finished", "rule-group", group.name,
				"error-count", len(results[i].errors), "warning-count", len(results[i].warnings))
			return nil
		})
	}
	_ = g.Wait() // rule groups never return errors

	result := &types.Result{
		Catalog:     catalog,
		Errors:      []types.Diagnostic{},
		Warnings:    []types.Diagnostic{},
		ImageGroups: idx.imageGroups,
	}
	for _, r := range results {
		result.Errors = append(result.Errors, r.errors...)
		result.Warnings = append(result.Warnings, r.warnings...)
	}

	slog.Info("validated catalog", "profile", v.opts.Profile,
		"error-count", len(result.Errors), "warning-count", len(result.Warnings))
	return result
}
