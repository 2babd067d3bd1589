package report

import (
	"github.com/chataigne/catalog-validator/src/types"
)

// Verdict is the overall outcome of a validation.
type Verdict string

const (
	Valid   Verdict = "VALID"
	Invalid Verdict = "INVALID"
)

// TypeCount is the number of diagnostics of one type.
type TypeCount struct {
	Type  types.DiagnosticType `json:"type"`
	Count int                  `json:"count"`
}

// Summary describes the catalog contents and the diagnostics found.
type Summary struct {
	CatalogName       string             `json:"catalog-name"`
	Categories        int                `json:"categories"`
	OptionLists       int                `json:"option-lists"`
	Options           int                `json:"options"`
	Products          int                `json:"products"`
	Deals             int                `json:"deals"`
	Discounts         int                `json:"discounts"`
	ProductsWithImage int                `json:"products-with-image"`
	ImagePercentage   float64            `json:"image-percentage"`
	ErrorCount        int                `json:"error-count"`
	WarningCount      int                `json:"warning-count"`
	ErrorsByType      []TypeCount        `json:"errors-by-type"`
	ImageGroups       []types.ImageGroup `json:"shared-images"`
}

// Report is the complete, immutable outcome of a validation pass.
type Report struct {
	Verdict  Verdict            `json:"verdict"`
	Summary  Summary            `json:"summary"`
	Errors   []types.Diagnostic `json:"errors"`
	Warnings []types.Diagnostic `json:"warnings"`
}

// Build creates a report from a validation result. The result is not modified.
func Build(result *types.Result) Report {
	summary := Summary{
		ErrorCount:   len(result.Errors),
		WarningCount: len(result.Warnings),
		ErrorsByType: countByType(result.Errors),
		ImageGroups:  result.ImageGroups,
	}
	if summary.ImageGroups == nil {
		summary.ImageGroups = []types.ImageGroup{}
	}

	if c := result.Catalog; c != nil {
		if c.Name.Ok() {
			summary.CatalogName = c.Name.Value
		}
		summary.Categories = seqLen(c.Categories)
		summary.OptionLists = seqLen(c.OptionLists)
		summary.Options = seqLen(c.Options)
		summary.Products = seqLen(c.Products)
		summary.Deals = seqLen(c.Deals)
		summary.Discounts = seqLen(c.Discounts)

		for _, p := range c.Products.Items {
			if p.ImageURL.Ok() && p.ImageURL.Value != "" {
				summary.ProductsWithImage++
			}
		}
		if summary.Products > 0 {
			summary.ImagePercentage = float64(summary.ProductsWithImage) * 100 / float64(summary.Products)
		}
	}

	verdict := Valid
	if len(result.Errors) > 0 {
		verdict = Invalid
	}

	return Report{
		Verdict:  verdict,
		Summary:  summary,
		Errors:   append([]types.Diagnostic{}, result.Errors...),
		Warnings: append([]types.Diagnostic{}, result.Warnings...),
	}
}

// countByType counts diagnostics per type, types in first-seen order.
func countByType(diags []types.Diagnostic) []TypeCount {
	counts := []TypeCount{}
	pos := make(map[types.DiagnosticType]int)
	for _, d := range diags {
		i, ok := pos[d.Type]
		if !ok {
			i = len(counts)
			pos[d.Type] = i
			counts = append(counts, TypeCount{Type: d.Type})
		}
		counts[i].Count++
	}
	return counts
}

// groupByType splits diagnostics per type, types in first-seen order.
func groupByType(diags []types.Diagnostic) [][]types.Diagnostic {
	var groups [][]types.Diagnostic
	pos := make(map[types.DiagnosticType]int)
	for _, d := range diags {
		i, ok := pos[d.Type]
		if !ok {
			i = len(groups)
			pos[d.Type] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], d)
	}
	return groups
}

func seqLen[T any](seq types.Seq[T]) int {
	return len(seq.Items) + len(seq.Malformed)
}
