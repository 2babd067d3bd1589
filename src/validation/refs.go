package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chataigne/catalog-validator/src/types"
)

var (
	refPattern      = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)
	separatorRun    = regexp.MustCompile(`[-\s]+`)
	camelBoundary   = regexp.MustCompile(`([a-z])([A-Z])`)
	invalidRefChars = regexp.MustCompile(`[^A-Z0-9_]`)
	underscoreRun   = regexp.MustCompile(`_+`)
)

// IsValidRef reports whether ref is UPPERCASE_SNAKE_CASE.
func IsValidRef(ref string) bool {
	return refPattern.MatchString(ref)
}

// SuggestRef derives an UPPERCASE_SNAKE_CASE ref from an arbitrary string.
//
//	"Main Courses" -> "MAIN_COURSES"
//	"mainCourses"  -> "MAIN_COURSES"
func SuggestRef(ref string) string {
	s := separatorRun.ReplaceAllString(ref, "_")
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ToUpper(s)
	s = invalidRefChars.ReplaceAllString(s, "")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "UNNAMED"
	}
	return s
}

// identifier is one value fed to the uniqueness checker.
type identifier struct {
	value string
	path  string
	owner string
}

// checkUnique flags every repeat of an already seen value, in document order.
// The first occurrence is never flagged.
func checkUnique(f *findings, kind types.DiagnosticType, label string, ids []identifier) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id.value] {
			f.errorAt(kind, id.path, fmt.Sprintf("%s %q is used more than once (%s)", label, id.value, id.owner))
			continue
		}
		seen[id.value] = true
	}
}

// checkRef validates the format of a ref field and collects it for the
// uniqueness pass. Missing refs are reported only when required.
func checkRef(f *findings, ref types.Field[string], path, owner string, required bool, ids *[]identifier) {
	if !ref.Present {
		if required {
			f.errorAt(types.MissingField, path, fmt.Sprintf("%s: ref is required", owner))
		}
		return
	}
	if !ref.Valid {
		f.errorAt(types.InvalidType, path, fmt.Sprintf("%s: ref must be a string", owner))
		return
	}

	*ids = append(*ids, identifier{value: ref.Value, path: path, owner: owner})

	if !IsValidRef(ref.Value) {
		suggested := SuggestRef(ref.Value)
		f.warn(types.Diagnostic{
			Type:       types.InvalidRefFormat,
			Path:       path,
			Message:    fmt.Sprintf("%s: ref %q is not UPPERCASE_SNAKE_CASE (suggested: %q)", owner, ref.Value, suggested),
			Suggestion: suggested,
		})
	}
}
