package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

const rule = "======================================================="

// RenderOptions controls truncation and colouring of the text report.
// Truncation never changes the totals shown.
type RenderOptions struct {
	ErrorLimit      int
	WarningLimit    int
	ImageGroupLimit int
	ImageNameLimit  int
	Color           bool
}

// DefaultRenderOptions returns the canonical report limits, uncoloured.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ErrorLimit:      5,
		WarningLimit:    10,
		ImageGroupLimit: 3,
		ImageNameLimit:  3,
	}
}

type palette struct {
	header  *color.Color
	section *color.Color
	errType *color.Color
	warn    *color.Color
	valid   *color.Color
	invalid *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header:  color.New(color.FgHiWhite, color.Bold),
		section: color.New(color.Bold, color.Underline),
		errType: color.New(color.FgHiRed, color.Bold),
		warn:    color.New(color.FgHiYellow),
		valid:   color.New(color.FgHiGreen, color.Bold),
		invalid: color.New(color.FgHiRed, color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{p.header, p.section, p.errType, p.warn, p.valid, p.invalid} {
			c.DisableColor()
		}
	}
	return p
}

// RenderText writes the human-readable report to w.
func RenderText(w io.Writer, r Report, opts RenderOptions) error {
	defaults := DefaultRenderOptions()
	if opts.ErrorLimit < 1 {
		opts.ErrorLimit = defaults.ErrorLimit
	}
	if opts.WarningLimit < 1 {
		opts.WarningLimit = defaults.WarningLimit
	}
	if opts.ImageGroupLimit < 1 {
		opts.ImageGroupLimit = defaults.ImageGroupLimit
	}
	if opts.ImageNameLimit < 1 {
		opts.ImageNameLimit = defaults.ImageNameLimit
	}

	p := newPalette(opts.Color)
	var buf bytes.Buffer
	s := r.Summary

	fmt.Fprintln(&buf, rule)
	p.header.Fprintln(&buf, "  CATALOG VALIDATION REPORT")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)

	name := s.CatalogName
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&buf, "Catalog: %s\n\n", name)

	p.section.Fprintln(&buf, "Contents:")
	if err := contentsTable(&buf, s); err != nil {
		return err
	}
	fmt.Fprintf(&buf, "Products with image: %d/%d (%.1f%%)\n\n", s.ProductsWithImage, s.Products, s.ImagePercentage)

	if len(r.Errors) == 0 {
		fmt.Fprintln(&buf, "No errors found.")
	} else {
		p.section.Fprintf(&buf, "ERRORS (%d):\n", len(r.Errors))
		for _, group := range groupByType(r.Errors) {
			p.errType.Fprintf(&buf, "  %s (%d):\n", group[0].Type, len(group))
			for _, d := range group[:min(len(group), opts.ErrorLimit)] {
				fmt.Fprintf(&buf, "    - %s\n", diagnosticLine(d.Path, d.Message))
			}
			if extra := len(group) - opts.ErrorLimit; extra > 0 {
				fmt.Fprintf(&buf, "    ... and %d more\n", extra)
			}
		}
	}
	fmt.Fprintln(&buf)

	if len(r.Warnings) > 0 {
		p.section.Fprintf(&buf, "WARNINGS (%d):\n", len(r.Warnings))
		for _, d := range r.Warnings[:min(len(r.Warnings), opts.WarningLimit)] {
			p.warn.Fprintf(&buf, "  - [%s] ", d.Type)
			fmt.Fprintln(&buf, diagnosticLine(d.Path, d.Message))
		}
		if extra := len(r.Warnings) - opts.WarningLimit; extra > 0 {
			fmt.Fprintf(&buf, "  ... and %d more\n", extra)
		}
		fmt.Fprintln(&buf)
	}

	if len(s.ImageGroups) > 0 {
		var shared int
		for _, g := range s.ImageGroups {
			shared += len(g.Products)
		}
		p.section.Fprintf(&buf, "SHARED IMAGES (%d URL(s), %d products):\n", len(s.ImageGroups), shared)
		for _, g := range s.ImageGroups[:min(len(s.ImageGroups), opts.ImageGroupLimit)] {
			names := strings.Join(g.Products[:min(len(g.Products), opts.ImageNameLimit)], ", ")
			if extra := len(g.Products) - opts.ImageNameLimit; extra > 0 {
				names += fmt.Sprintf(" +%d more", extra)
			}
			fmt.Fprintf(&buf, "  %s\n    used by: %s\n", g.BaseURL, names)
		}
		if extra := len(s.ImageGroups) - opts.ImageGroupLimit; extra > 0 {
			fmt.Fprintf(&buf, "  ... and %d more\n", extra)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, rule)
	if r.Verdict == Valid {
		verdict := "  VALID"
		if len(r.Warnings) > 0 {
			verdict += " (with warnings)"
		}
		p.valid.Fprintln(&buf, verdict)
	} else {
		p.invalid.Fprintf(&buf, "  INVALID (%d error(s))\n", len(r.Errors))
	}
	fmt.Fprintln(&buf, rule)

	_, err := w.Write(buf.Bytes())
	return err
}

func contentsTable(w io.Writer, s Summary) error {
	table := tablewriter.NewWriter(w)
	rows := [][]string{
		{"Categories", strconv.Itoa(s.Categories)},
		{"Option lists", strconv.Itoa(s.OptionLists)},
		{"Options", strconv.Itoa(s.Options)},
		{"Products", strconv.Itoa(s.Products)},
		{"Deals", strconv.Itoa(s.Deals)},
		{"Discounts", strconv.Itoa(s.Discounts)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append contents row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render contents table: %w", err)
	}
	return nil
}

func diagnosticLine(path, message string) string {
	if path == "" {
		return message
	}
	return path + ": " + message
}

// RenderJSON writes the machine-readable report to w.
func RenderJSON(w io.Writer, r Report) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Encode encodes a report as indented JSON with a trailing newline.
func Encode(r Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}
