package validation

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chataigne/catalog-validator/src/types"
)

const minimalCatalog = `{
  "catalog": {
    "name": "Pizzeria Roma",
    "categories": [
      {"name": "Pizzas", "ref": "PIZZAS"}
    ],
    "optionLists": [
      {"name": "Toppings", "ref": "TOPPINGS", "minSelections": 0, "maxSelections": 2}
    ],
    "options": [
      {
        "name": "Olives",
        "ref": "OLIVES",
        "optionListName": "Toppings",
        "price": {"amount": 1, "currency": "EUR"},
        "available": true,
        "imageUrl": "https://cdn.example.com/olives.jpg"
      }
    ],
    "products": [
      {
        "name": "Margherita",
        "ref": "MARGHERITA",
        "categoryName": "Pizzas",
        "available": true,
        "imageUrl": "https://cdn.example.com/margherita.jpg",
        "sku": {
          "price": {"amount": 9.5, "currency": "EUR"},
          "optionListNames": ["Toppings"]
        }
      }
    ]
  }
}`

// parseDoc parses a JSON test document, failing the test on bad input.
func parseDoc(t *testing.T, data string) any {
	t.Helper()
	doc, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatalf("bad test document: %v", err)
	}
	return doc
}

// catalogOf returns the mutable `catalog` object of a parsed document.
func catalogOf(doc any) map[string]any {
	return doc.(map[string]any)["catalog"].(map[string]any)
}

// entity returns the i'th object of a top-level catalog collection.
func entity(doc any, key string, i int) map[string]any {
	return catalogOf(doc)[key].([]any)[i].(map[string]any)
}

func run(t *testing.T, doc any, opts Options) *types.Result {
	t.Helper()
	return NewValidator(opts).Validate(doc)
}

func findDiag(diags []types.Diagnostic, kind types.DiagnosticType, path string) (types.Diagnostic, bool) {
	for _, d := range diags {
		if d.Type == kind && d.Path == path {
			return d, true
		}
	}
	return types.Diagnostic{}, false
}

func countType(diags []types.Diagnostic, kind types.DiagnosticType) int {
	n := 0
	for _, d := range diags {
		if d.Type == kind {
			n++
		}
	}
	return n
}

func TestValidate_MinimalCatalog(t *testing.T) {
	result := run(t, parseDoc(t, minimalCatalog), DefaultOptions())

	if !result.Valid() {
		t.Errorf("expected minimal catalog to be valid, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got: %v", result.Warnings)
	}
	if result.Catalog == nil || result.Catalog.Name.Value != "Pizzeria Roma" {
		t.Errorf("expected extracted catalog to be returned")
	}
}

func TestValidate_StructuralGate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"array document", `[]`},
		{"string document", `"catalog"`},
		{"empty object", `{}`},
		{"null catalog", `{"catalog": null}`},
		{"false catalog", `{"catalog": false}`},
		{"empty catalog object", `{"catalog": {}}`},
		{"empty catalog array", `{"catalog": []}`},
		{"non-empty catalog array", `{"catalog": [1]}`},
		{"string catalog", `{"catalog": "menu"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := run(t, parseDoc(t, tt.doc), DefaultOptions())

			if len(result.Errors) != 1 || result.Errors[0].Type != types.MissingRoot {
				t.Fatalf("expected exactly one MISSING_ROOT error, got: %v", result.Errors)
			}
			if len(result.Warnings) != 0 {
				t.Errorf("expected no warnings, got: %v", result.Warnings)
			}
			if result.Catalog != nil {
				t.Errorf("expected no catalog after gate rejection")
			}
		})
	}
}

func TestValidate_MissingCatalogName(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	delete(catalogOf(doc), "name")

	result := run(t, doc, DefaultOptions())
	if _, ok := findDiag(result.Errors, types.MissingField, "catalog.name"); !ok {
		t.Errorf("expected MISSING_FIELD at catalog.name, got: %v", result.Errors)
	}
}

func TestValidate_ReferenceSuggestion(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	entity(doc, "products", 0)["categoryName"] = "Pizzza"

	result := run(t, doc, DefaultOptions())

	d, ok := findDiag(result.Errors, types.InvalidReference, "catalog.products[0].categoryName")
	if !ok {
		t.Fatalf("expected INVALID_REFERENCE, got: %v", result.Errors)
	}
	if d.Suggestion != "Pizzas" {
		t.Errorf("expected suggestion %q, got %q", "Pizzas", d.Suggestion)
	}
	if !strings.Contains(d.Message, `did you mean "Pizzas"?`) {
		t.Errorf("expected suggestion in message, got: %s", d.Message)
	}
	if _, ok := findDiag(result.Warnings, types.EmptyCategory, ""); !ok {
		t.Errorf("expected Pizzas to be reported as an empty category")
	}
}

func TestValidate_ReferenceWithoutSuggestion(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	entity(doc, "products", 0)["categoryName"] = "Desserts"

	result := run(t, doc, DefaultOptions())

	d, ok := findDiag(result.Errors, types.InvalidReference, "catalog.products[0].categoryName")
	if !ok {
		t.Fatalf("expected INVALID_REFERENCE, got: %v", result.Errors)
	}
	if d.Suggestion != "" || strings.Contains(d.Message, "did you mean") {
		t.Errorf("expected no suggestion, got %q in %q", d.Suggestion, d.Message)
	}
}

func TestValidate_Uniqueness(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	catalogOf(doc)["categories"] = []any{
		map[string]any{"name": "Pizzas", "ref": "PIZZAS"},
		map[string]any{"name": "Pasta", "ref": "PIZZAS"},
		map[string]any{"name": "Pizzas", "ref": "PIZZAS_2"},
	}

	result := run(t, doc, DefaultOptions())

	if countType(result.Errors, types.DuplicateRef) != 1 {
		t.Errorf("expected one DUPLICATE_REF, got: %v", result.Errors)
	}
	if _, ok := findDiag(result.Errors, types.DuplicateRef, "catalog.categories[1].ref"); !ok {
		t.Errorf("expected the repeat, not the first occurrence, to be flagged")
	}
	if _, ok := findDiag(result.Errors, types.DuplicateName, "catalog.categories[2].name"); !ok {
		t.Errorf("expected DUPLICATE_NAME at categories[2], got: %v", result.Errors)
	}
}

func TestValidate_RefFormatIsWarning(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	entity(doc, "categories", 0)["ref"] = "main courses"

	result := run(t, doc, DefaultOptions())

	if !result.Valid() {
		t.Errorf("expected ref format to be a warning only, got errors: %v", result.Errors)
	}
	d, ok := findDiag(result.Warnings, types.InvalidRefFormat, "catalog.categories[0].ref")
	if !ok {
		t.Fatalf("expected INVALID_REF_FORMAT warning, got: %v", result.Warnings)
	}
	if d.Suggestion != "MAIN_COURSES" {
		t.Errorf("expected suggestion MAIN_COURSES, got %q", d.Suggestion)
	}
}

func TestValidate_Prices(t *testing.T) {
	tests := []struct {
		name  string
		price any
		kind  types.DiagnosticType
		path  string
	}{
		{"negative amount", map[string]any{"amount": -1.0, "currency": "EUR"}, types.InvalidValue, "catalog.products[0].sku.price.amount"},
		{"missing price", nil, types.MissingField, "catalog.products[0].sku.price"},
		{"price not an object", "9.50", types.InvalidType, "catalog.products[0].sku.price"},
		{"amount not a number", map[string]any{"amount": "9.50", "currency": "EUR"}, types.InvalidType, "catalog.products[0].sku.price.amount"},
		{"missing amount", map[string]any{"currency": "EUR"}, types.MissingField, "catalog.products[0].sku.price.amount"},
		{"missing currency", map[string]any{"amount": 9.5}, types.MissingField, "catalog.products[0].sku.price.currency"},
		{"blank currency", map[string]any{"amount": 9.5, "currency": " "}, types.MissingField, "catalog.products[0].sku.price.currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, minimalCatalog)
			sku := entity(doc, "products", 0)["sku"].(map[string]any)
			if tt.price == nil {
				delete(sku, "price")
			} else {
				sku["price"] = tt.price
			}

			result := run(t, doc, DefaultOptions())
			if _, ok := findDiag(result.Errors, tt.kind, tt.path); !ok {
				t.Errorf("expected %s at %s, got: %v", tt.kind, tt.path, result.Errors)
			}
		})
	}
}

func TestValidate_ZeroPriceIsValid(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	entity(doc, "options", 0)["price"] = map[string]any{"amount": 0.0, "currency": "EUR"}

	result := run(t, doc, DefaultOptions())
	if !result.Valid() {
		t.Errorf("expected free option to be valid, got: %v", result.Errors)
	}
}

func TestValidate_HighPrice(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	sku := entity(doc, "products", 0)["sku"].(map[string]any)
	sku["price"] = map[string]any{"amount": 750.0, "currency": "EUR"}

	result := run(t, doc, DefaultOptions())
	if !result.Valid() {
		t.Errorf("expected high price to be a warning only, got: %v", result.Errors)
	}
	if _, ok := findDiag(result.Warnings, types.HighPrice, "catalog.products[0].sku.price.amount"); !ok {
		t.Errorf("expected HIGH_PRICE warning, got: %v", result.Warnings)
	}

	opts := DefaultOptions()
	opts.HighPriceThreshold = 1000
	result = run(t, doc, opts)
	if countType(result.Warnings, types.HighPrice) != 0 {
		t.Errorf("expected threshold to be configurable, got: %v", result.Warnings)
	}
}

func TestValidate_OptionListSelections(t *testing.T) {
	tests := []struct {
		name     string
		min, max any
		kind     types.DiagnosticType
		path     string
		warning  bool
	}{
		{"max below min", 2.0, 1.0, types.InvalidValue, "catalog.optionLists[0].maxSelections", false},
		{"negative min", -1.0, 2.0, types.InvalidValue, "catalog.optionLists[0].minSelections", false},
		{"fractional min", 1.5, 2.0, types.InvalidType, "catalog.optionLists[0].minSelections", false},
		{"string max", 0.0, "two", types.InvalidType, "catalog.optionLists[0].maxSelections", false},
		{"more required than available", 2.0, 3.0, types.UnderpopulatedOptionList, "catalog.optionLists[0]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, minimalCatalog)
			ol := entity(doc, "optionLists", 0)
			ol["minSelections"] = tt.min
			ol["maxSelections"] = tt.max

			result := run(t, doc, DefaultOptions())
			diags := result.Errors
			if tt.warning {
				diags = result.Warnings
			}
			if _, ok := findDiag(diags, tt.kind, tt.path); !ok {
				t.Errorf("expected %s at %s, got errors %v warnings %v", tt.kind, tt.path, result.Errors, result.Warnings)
			}
		})
	}
}

func TestValidate_Deals(t *testing.T) {
	tests := []struct {
		name  string
		lines any
		kind  types.DiagnosticType
		path  string
	}{
		{"missing lines", nil, types.MissingField, "catalog.deals[0].lines"},
		{"empty lines", []any{}, types.InvalidValue, "catalog.deals[0].lines"},
		{"lines not an array", "all", types.InvalidType, "catalog.deals[0].lines"},
		{"empty skus", []any{map[string]any{"skus": []any{}}}, types.InvalidValue, "catalog.deals[0].lines[0].skus"},
		{"unknown product", []any{map[string]any{"skus": []any{
			map[string]any{"skuName": "Margheritta (Large)"},
		}}}, types.InvalidReference, "catalog.deals[0].lines[0].skus[0].skuName"},
		{"missing skuName", []any{map[string]any{"skus": []any{
			map[string]any{},
		}}}, types.MissingField, "catalog.deals[0].lines[0].skus[0].skuName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, minimalCatalog)
			deal := map[string]any{
				"name":         "Pizza Night",
				"categoryName": "Pizzas",
				"price":        map[string]any{"amount": 15.0, "currency": "EUR"},
			}
			if tt.lines != nil {
				deal["lines"] = tt.lines
			}
			catalogOf(doc)["deals"] = []any{deal}

			result := run(t, doc, DefaultOptions())
			if _, ok := findDiag(result.Errors, tt.kind, tt.path); !ok {
				t.Errorf("expected %s at %s, got: %v", tt.kind, tt.path, result.Errors)
			}
		})
	}
}

func TestValidate_DealSkuNameResolvesToProduct(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	catalogOf(doc)["deals"] = []any{map[string]any{
		"name":         "Pizza Night",
		"categoryName": "Pizzas",
		"price":        map[string]any{"amount": 15.0, "currency": "EUR"},
		"lines": []any{map[string]any{"skus": []any{
			map[string]any{"skuName": "Margherita (Large)"},
			map[string]any{"skuName": "Margheritta"},
		}}},
	}}

	result := run(t, doc, DefaultOptions())

	if countType(result.Errors, types.InvalidReference) != 1 {
		t.Fatalf("expected only the misspelt sku to be flagged, got: %v", result.Errors)
	}
	d, _ := findDiag(result.Errors, types.InvalidReference, "catalog.deals[0].lines[0].skus[1].skuName")
	if d.Suggestion != "Margherita" {
		t.Errorf("expected suggestion Margherita, got %q", d.Suggestion)
	}
}

func TestValidate_Collections(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	catalogOf(doc)["deals"] = map[string]any{}
	catalogOf(doc)["products"] = append(catalogOf(doc)["products"].([]any), 42.0)

	result := run(t, doc, DefaultOptions())

	if _, ok := findDiag(result.Errors, types.InvalidType, "catalog.deals"); !ok {
		t.Errorf("expected INVALID_TYPE for non-array deals, got: %v", result.Errors)
	}
	if _, ok := findDiag(result.Errors, types.InvalidType, "catalog.products[1]"); !ok {
		t.Errorf("expected INVALID_TYPE for non-object product, got: %v", result.Errors)
	}
}

func TestValidate_Profiles(t *testing.T) {
	build := func() any {
		doc := parseDoc(t, minimalCatalog)
		delete(entity(doc, "categories", 0), "ref")
		delete(entity(doc, "optionLists", 0), "ref")
		delete(entity(doc, "options", 0), "ref")
		delete(entity(doc, "options", 0), "available")
		delete(entity(doc, "products", 0), "available")
		return doc
	}

	strict := run(t, build(), DefaultOptions())
	wantMissing := []string{
		"catalog.categories[0].ref",
		"catalog.optionLists[0].ref",
		"catalog.options[0].ref",
		"catalog.options[0].available",
		"catalog.products[0].available",
	}
	for _, path := range wantMissing {
		if _, ok := findDiag(strict.Errors, types.MissingField, path); !ok {
			t.Errorf("strict: expected MISSING_FIELD at %s", path)
		}
	}

	opts := DefaultOptions()
	opts.Profile = LaxProfile
	lax := run(t, build(), opts)
	if !lax.Valid() {
		t.Errorf("lax: expected valid catalog, got: %v", lax.Errors)
	}
}

func TestValidate_ProductRefIsOptional(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	delete(entity(doc, "products", 0), "ref")

	result := run(t, doc, DefaultOptions())
	if !result.Valid() {
		t.Errorf("expected product without ref to be valid, got: %v", result.Errors)
	}
}

func TestValidate_Settings(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	catalogOf(doc)["settings"] = map[string]any{"primaryCategories": []any{"Pizzas", "Pizas"}}

	result := run(t, doc, DefaultOptions())

	d, ok := findDiag(result.Errors, types.InvalidReference, "catalog.settings.primaryCategories[1]")
	if !ok {
		t.Fatalf("expected INVALID_REFERENCE, got: %v", result.Errors)
	}
	if d.Suggestion != "Pizzas" {
		t.Errorf("expected suggestion Pizzas, got %q", d.Suggestion)
	}
	if countType(result.Errors, types.InvalidReference) != 1 {
		t.Errorf("expected the declared category to resolve, got: %v", result.Errors)
	}
}

func TestValidate_EmptyEntities(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	c := catalogOf(doc)
	c["categories"] = append(c["categories"].([]any), map[string]any{"name": "Desserts", "ref": "DESSERTS"})
	c["optionLists"] = append(c["optionLists"].([]any), map[string]any{"name": "Sauces", "ref": "SAUCES"})

	result := run(t, doc, DefaultOptions())

	if !result.Valid() {
		t.Errorf("expected empty entities to be warnings only, got: %v", result.Errors)
	}
	if countType(result.Warnings, types.EmptyCategory) != 1 {
		t.Errorf("expected one EMPTY_CATEGORY, got: %v", result.Warnings)
	}
	if countType(result.Warnings, types.EmptyOptionList) != 1 {
		t.Errorf("expected one EMPTY_OPTION_LIST, got: %v", result.Warnings)
	}
}

func TestValidate_DoesNotMutateDocument(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	entity(doc, "products", 0)["categoryName"] = "Pizzza"
	before := parseDoc(t, minimalCatalog)
	entity(before, "products", 0)["categoryName"] = "Pizzza"

	run(t, doc, DefaultOptions())

	if !reflect.DeepEqual(doc, before) {
		t.Errorf("validation modified the input document")
	}
}

func TestValidate_DeterministicAcrossWorkers(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	c := catalogOf(doc)
	entity(doc, "products", 0)["categoryName"] = "Pizzza"
	entity(doc, "categories", 0)["ref"] = "pizzas"
	c["discounts"] = []any{map[string]any{"name": "Promo", "discountType": "bogus", "level": "public"}}
	delete(entity(doc, "options", 0), "imageUrl")

	serial := DefaultOptions()
	serial.Workers = 1
	parallel := DefaultOptions()
	parallel.Workers = 8

	first := run(t, doc, serial)
	for i := 0; i < 5; i++ {
		next := run(t, doc, parallel)
		if !reflect.DeepEqual(first.Errors, next.Errors) || !reflect.DeepEqual(first.Warnings, next.Warnings) {
			t.Fatalf("results differ between runs:\n%v\n%v", first, next)
		}
	}
}

func TestValidate_MergeOrder(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	delete(catalogOf(doc), "name")
	entity(doc, "products", 0)["categoryName"] = "Pizzza"
	delete(entity(doc, "categories", 0), "name")

	result := run(t, doc, DefaultOptions())

	if len(result.Errors) < 3 {
		t.Fatalf("expected at least three errors, got: %v", result.Errors)
	}
	if result.Errors[0].Path != "catalog.name" {
		t.Errorf("expected catalog errors first, got %s", result.Errors[0].Path)
	}
	if result.Errors[1].Path != "catalog.categories[0].name" {
		t.Errorf("expected category errors second, got %s", result.Errors[1].Path)
	}
}

func TestNewValidator_Defaults(t *testing.T) {
	v := NewValidator(Options{})
	if v.opts != DefaultOptions() {
		t.Errorf("expected zero options to fall back to defaults, got %+v", v.opts)
	}
}

// The catalog name is required, so the smallest valid catalog still has one.
// TestValidate_UnnamedCatalog covers the same document without it.
func TestValidate_SmallestValidCatalog(t *testing.T) {
	doc := parseDoc(t, `{
  "catalog": {
    "name": "Corner Shop",
    "categories": [{"name": "Snacks", "ref": "SNACKS"}],
    "products": [{
      "name": "Crisps",
      "categoryName": "Snacks",
      "available": true,
      "sku": {"price": {"amount": 1.2, "currency": "GBP"}}
    }]
  }
}`)

	result := run(t, doc, DefaultOptions())

	if !result.Valid() {
		t.Errorf("expected valid catalog, got: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Type != types.MissingImage {
		t.Errorf("expected exactly one MISSING_IMAGE warning, got: %v", result.Warnings)
	}
}

func TestValidate_UnnamedCatalog(t *testing.T) {
	doc := parseDoc(t, `{
  "catalog": {
    "categories": [{"name": "Snacks", "ref": "SNACKS"}],
    "products": [{
      "name": "Crisps",
      "categoryName": "Snacks",
      "available": true,
      "sku": {"price": {"amount": 1.2, "currency": "GBP"}}
    }]
  }
}`)

	result := run(t, doc, DefaultOptions())

	if len(result.Errors) != 1 {
		t.Fatalf("expected only the missing name to be reported, got: %v", result.Errors)
	}
	if _, ok := findDiag(result.Errors, types.MissingField, "catalog.name"); !ok {
		t.Errorf("expected MISSING_FIELD at catalog.name, got: %v", result.Errors)
	}
}

func TestValidate_SelectionBoundsSingleError(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	ol := entity(doc, "optionLists", 0)
	ol["minSelections"] = 2.0
	ol["maxSelections"] = 1.0

	result := run(t, doc, DefaultOptions())

	if n := countType(result.Errors, types.InvalidValue); n != 1 {
		t.Fatalf("expected exactly one INVALID_VALUE, got: %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Message, `option list "Toppings"`) {
		t.Errorf("expected message to name the option list, got: %s", result.Errors[0].Message)
	}
}

func TestValidate_SelectionBoundsOutOfRange(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	ol := entity(doc, "optionLists", 0)
	ol["minSelections"] = 1e300
	ol["maxSelections"] = -1e300

	result := run(t, doc, DefaultOptions())

	for _, path := range []string{"catalog.optionLists[0].minSelections", "catalog.optionLists[0].maxSelections"} {
		if _, ok := findDiag(result.Errors, types.InvalidType, path); !ok {
			t.Errorf("expected INVALID_TYPE at %s, got: %v", path, result.Errors)
		}
	}
	if n := countType(result.Errors, types.InvalidValue); n != 0 {
		t.Errorf("expected no range errors for numbers that are not integers, got: %v", result.Errors)
	}
}

func TestValidate_ReferencesIndependentOfOrder(t *testing.T) {
	doc := parseDoc(t, minimalCatalog)
	c := catalogOf(doc)
	c["categories"] = append(c["categories"].([]any), map[string]any{"name": "Pasta", "ref": "PASTA"})
	c["products"] = append(c["products"].([]any), map[string]any{
		"name":         "Carbonara",
		"categoryName": "Pasta",
		"available":    true,
		"imageUrl":     "https://cdn.example.com/carbonara.jpg",
		"sku":          map[string]any{"price": map[string]any{"amount": 11.0, "currency": "EUR"}},
	})

	reverse := func(items []any) []any {
		out := make([]any, len(items))
		for i, item := range items {
			out[len(items)-1-i] = item
		}
		return out
	}

	forward := run(t, doc, DefaultOptions())
	for _, key := range []string{"categories", "optionLists", "options", "products"} {
		c[key] = reverse(c[key].([]any))
	}
	backward := run(t, doc, DefaultOptions())

	for _, result := range []*types.Result{forward, backward} {
		if n := countType(result.Errors, types.InvalidReference); n != 0 {
			t.Errorf("expected exact references to resolve, got: %v", result.Errors)
		}
	}
}
