package validation

import (
	"github.com/chataigne/catalog-validator/src/types"
)

// checkRoot returns the `catalog` object, or the single fatal diagnostic that
// stops validation when it is missing.
func checkRoot(doc any) (map[string]any, *types.Diagnostic) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, &types.Diagnostic{
			Type:    types.MissingRoot,
			Message: "invalid JSON structure: document must be an object with a 'catalog' property",
		}
	}

	raw := root["catalog"]
	if isFalsy(raw) {
		return nil, &types.Diagnostic{
			Type:    types.MissingRoot,
			Path:    "catalog",
			Message: "invalid JSON structure: missing 'catalog' property",
		}
	}

	catalog, ok := raw.(map[string]any)
	if !ok {
		return nil, &types.Diagnostic{
			Type:    types.MissingRoot,
			Path:    "catalog",
			Message: "invalid JSON structure: 'catalog' must be an object",
		}
	}

	return catalog, nil
}

// isFalsy follows JSON truthiness: null, false, 0, "", [] and {} are falsy.
func isFalsy(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
