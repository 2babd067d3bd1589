package validation

import (
	"fmt"
	"strings"

	"github.com/chataigne/catalog-validator/src/types"
)

func checkCatalog(idx *index) findings {
	var f findings
	checkRequiredString(&f, idx.catalog.Name, "catalog.name", "catalog", "name", true)
	return f
}

func checkCategories(idx *index) findings {
	var f findings
	categories := idx.catalog.Categories
	checkCollection(&f, categories, "categories", "category")

	var refs, names []identifier
	for _, c := range categories.Items {
		path := fmt.Sprintf("catalog.categories[%d]", c.Index)
		owner := types.DisplayName(c.Name, "category", c.Index, true)

		if checkRequiredString(&f, c.Name, path+".name", owner, "name", true) {
			names = append(names, identifier{value: c.Name.Value, path: path + ".name", owner: owner})
		}
		checkRef(&f, c.Ref, path+".ref", owner, idx.strict(), &refs)
	}

	checkUnique(&f, types.DuplicateRef, "category ref", refs)
	checkUnique(&f, types.DuplicateName, "category name", names)
	return f
}

func checkOptionLists(idx *index) findings {
	var f findings
	optionLists := idx.catalog.OptionLists
	checkCollection(&f, optionLists, "optionLists", "option list")

	// Options per list name, for the population check.
	populated := make(map[string]int)
	for _, o := range idx.catalog.Options.Items {
		if o.OptionListName.Ok() {
			populated[o.OptionListName.Value]++
		}
	}

	var refs, names []identifier
	for _, ol := range optionLists.Items {
		path := fmt.Sprintf("catalog.optionLists[%d]", ol.Index)
		owner := types.DisplayName(ol.Name, "option list", ol.Index, true)

		if checkRequiredString(&f, ol.Name, path+".name", owner, "name", true) {
			names = append(names, identifier{value: ol.Name.Value, path: path + ".name", owner: owner})
		}
		checkRef(&f, ol.Ref, path+".ref", owner, idx.strict(), &refs)

		minSel, maxSel := ol.MinSelections, ol.MaxSelections
		if minSel.Present && !minSel.Valid {
			f.errorAt(types.InvalidType, path+".minSelections", fmt.Sprintf("%s: minSelections must be an integer", owner))
		}
		if maxSel.Present && !maxSel.Valid {
			f.errorAt(types.InvalidType, path+".maxSelections", fmt.Sprintf("%s: maxSelections must be an integer", owner))
		}
		if minSel.Ok() {
			issues := SelectionSchema.Validate(&selectionValues{MinSelections: minSel.Value})
			for _, msg := range IssueMessages(issues) {
				f.errorAt(types.InvalidValue, path+".minSelections", fmt.Sprintf("%s: %s", owner, msg))
			}
		}
		if minSel.Ok() && maxSel.Ok() && maxSel.Value < minSel.Value {
			f.errorAt(types.InvalidValue, path+".maxSelections",
				fmt.Sprintf("%s: maxSelections (%d) must be >= minSelections (%d)", owner, maxSel.Value, minSel.Value))
		}

		if minSel.Ok() && minSel.Value > 0 && ol.Name.Ok() {
			if count := populated[ol.Name.Value]; count < minSel.Value {
				f.warnAt(types.UnderpopulatedOptionList, path,
					fmt.Sprintf("%s requires %d selection(s) but only has %d option(s)", owner, minSel.Value, count))
			}
		}
	}

	checkUnique(&f, types.DuplicateRef, "option list ref", refs)
	checkUnique(&f, types.DuplicateName, "option list name", names)
	return f
}

func checkOptions(idx *index) findings {
	var f findings
	options := idx.catalog.Options
	checkCollection(&f, options, "options", "option")

	var refs []identifier
	for _, o := range options.Items {
		path := fmt.Sprintf("catalog.options[%d]", o.Index)
		owner := types.DisplayName(o.Name, "option", o.Index, true)

		checkRequiredString(&f, o.Name, path+".name", owner, "name", true)
		checkRef(&f, o.Ref, path+".ref", owner, idx.strict(), &refs)

		if checkRequiredString(&f, o.OptionListName, path+".optionListName", owner, "optionListName", idx.strict()) {
			f.reference(idx.optionListNames, o.OptionListName.Value, path+".optionListName",
				fmt.Sprintf("option list %q referenced by %s is not defined", o.OptionListName.Value, owner),
				idx.opts.SuggestionCutoff)
		}

		checkPrice(&f, o.Price, path+".price", owner)
		checkAvailable(&f, o.Available, path+".available", owner, idx.strict())
	}

	checkUnique(&f, types.DuplicateRef, "option ref", refs)
	return f
}

func checkProducts(idx *index) findings {
	var f findings
	products := idx.catalog.Products
	checkCollection(&f, products, "products", "product")

	var refs []identifier
	for _, p := range products.Items {
		path := fmt.Sprintf("catalog.products[%d]", p.Index)
		owner := types.DisplayName(p.Name, "product", p.Index, true)

		checkRequiredString(&f, p.Name, path+".name", owner, "name", true)
		checkRef(&f, p.Ref, path+".ref", owner, false, &refs)

		if checkRequiredString(&f, p.CategoryName, path+".categoryName", owner, "categoryName", true) {
			f.reference(idx.categoryNames, p.CategoryName.Value, path+".categoryName",
				fmt.Sprintf("category %q referenced by %s is not defined", p.CategoryName.Value, owner),
				idx.opts.SuggestionCutoff)
		}

		checkAvailable(&f, p.Available, path+".available", owner, idx.strict())
		checkSKU(&f, idx, p.SKU, path+".sku", owner)
	}

	checkUnique(&f, types.DuplicateRef, "product ref", refs)
	return f
}

func checkSKU(f *findings, idx *index, sku types.SKU, path, owner string) {
	if !sku.Present {
		f.errorAt(types.MissingField, path, fmt.Sprintf("%s: sku is required", owner))
		return
	}
	if !sku.IsObject {
		f.errorAt(types.InvalidType, path, fmt.Sprintf("%s: sku must be an object", owner))
		return
	}

	if amount, ok := checkPrice(f, sku.Price, path+".price", owner); ok && amount > idx.opts.HighPriceThreshold {
		f.warnAt(types.HighPrice, path+".price.amount",
			fmt.Sprintf("%s: price %.2f is above %.2f, check the amount is in store currency units", owner, amount, idx.opts.HighPriceThreshold))
	}

	names := sku.OptionListNames
	if names.Present && !names.Valid {
		f.errorAt(types.InvalidType, path+".optionListNames", fmt.Sprintf("%s: optionListNames must be an array", owner))
		return
	}
	for i, name := range names.Items {
		itemPath := fmt.Sprintf("%s.optionListNames[%d]", path, i)
		if !name.Ok() {
			f.errorAt(types.InvalidType, itemPath, fmt.Sprintf("%s: optionListNames entries must be strings", owner))
			continue
		}
		f.reference(idx.optionListNames, name.Value, itemPath,
			fmt.Sprintf("option list %q referenced by %s is not defined", name.Value, owner),
			idx.opts.SuggestionCutoff)
	}
}

func checkDeals(idx *index) findings {
	var f findings
	deals := idx.catalog.Deals
	checkCollection(&f, deals, "deals", "deal")

	for _, d := range deals.Items {
		path := fmt.Sprintf("catalog.deals[%d]", d.Index)
		owner := types.DisplayName(d.Name, "deal", d.Index, true)

		checkRequiredString(&f, d.Name, path+".name", owner, "name", true)
		if checkRequiredString(&f, d.CategoryName, path+".categoryName", owner, "categoryName", true) {
			f.reference(idx.categoryNames, d.CategoryName.Value, path+".categoryName",
				fmt.Sprintf("category %q referenced by %s is not defined", d.CategoryName.Value, owner),
				idx.opts.SuggestionCutoff)
		}
		checkPrice(&f, d.Price, path+".price", owner)

		if !checkNonEmptySeq(&f, d.Lines, path+".lines", owner, "lines", "line") {
			continue
		}
		for _, line := range d.Lines.Items {
			linePath := fmt.Sprintf("%s.lines[%d]", path, line.Index)
			lineOwner := fmt.Sprintf("%s line #%d", owner, line.Index)
			if !checkNonEmptySeq(&f, line.SKUs, linePath+".skus", lineOwner, "skus", "sku") {
				continue
			}
			for _, sku := range line.SKUs.Items {
				skuPath := fmt.Sprintf("%s.skus[%d].skuName", linePath, sku.Index)
				if !checkRequiredString(&f, sku.SkuName, skuPath, lineOwner, "skuName", true) {
					continue
				}
				product := productKey(sku.SkuName.Value)
				f.reference(idx.productNames, product, skuPath,
					fmt.Sprintf("product %q referenced by %s is not defined", product, owner),
					idx.opts.SuggestionCutoff)
			}
		}
	}
	return f
}

// Shared field rules

// checkCollection reports a top-level entity list that is not an array of objects.
func checkCollection[T any](f *findings, seq types.Seq[T], key, kind string) {
	if seq.Present && !seq.Valid {
		f.errorAt(types.InvalidType, "catalog."+key, key+" must be an array")
	}
	for _, i := range seq.Malformed {
		f.errorAt(types.InvalidType, fmt.Sprintf("catalog.%s[%d]", key, i), fmt.Sprintf("%s #%d must be an object", kind, i))
	}
}

// checkNonEmptySeq requires a nested array of objects with at least one entry.
// It reports whether the items are worth descending into.
func checkNonEmptySeq[T any](f *findings, seq types.Seq[T], path, owner, key, kind string) bool {
	switch {
	case !seq.Present:
		f.errorAt(types.MissingField, path, fmt.Sprintf("%s: %s is required", owner, key))
		return false
	case !seq.Valid:
		f.errorAt(types.InvalidType, path, fmt.Sprintf("%s: %s must be an array", owner, key))
		return false
	case len(seq.Items) == 0 && len(seq.Malformed) == 0:
		f.errorAt(types.InvalidValue, path, fmt.Sprintf("%s: %s must contain at least one %s", owner, key, kind))
		return false
	}
	for _, i := range seq.Malformed {
		f.errorAt(types.InvalidType, fmt.Sprintf("%s[%d]", path, i), fmt.Sprintf("%s: %s #%d must be an object", owner, kind, i))
	}
	return true
}

// checkRequiredString reports whether field holds a usable non-empty string.
// Missing or blank values are errors only when required.
func checkRequiredString(f *findings, field types.Field[string], path, owner, key string, required bool) bool {
	if !field.Present {
		if required {
			f.errorAt(types.MissingField, path, fmt.Sprintf("%s: %s is required", owner, key))
		}
		return false
	}
	if !field.Valid {
		f.errorAt(types.InvalidType, path, fmt.Sprintf("%s: %s must be a string", owner, key))
		return false
	}
	if strings.TrimSpace(field.Value) == "" {
		if required {
			f.errorAt(types.MissingField, path, fmt.Sprintf("%s: %s must be a non-empty string", owner, key))
		}
		return false
	}
	return true
}

func checkAvailable(f *findings, field types.Field[bool], path, owner string, required bool) {
	if !field.Present {
		if required {
			f.errorAt(types.MissingField, path, fmt.Sprintf("%s: available is required", owner))
		}
		return
	}
	if !field.Valid {
		f.errorAt(types.InvalidType, path, fmt.Sprintf("%s: available must be a boolean", owner))
	}
}

// checkPrice validates a `{amount, currency}` object and returns the amount
// when it is a usable number.
func checkPrice(f *findings, price types.Price, path, owner string) (float64, bool) {
	if !price.Present {
		f.errorAt(types.MissingField, path, fmt.Sprintf("%s: price is required", owner))
		return 0, false
	}
	if !price.IsObject {
		f.errorAt(types.InvalidType, path, fmt.Sprintf("%s: price must be an object {amount, currency}", owner))
		return 0, false
	}

	amountOk := false
	switch {
	case !price.Amount.Present:
		f.errorAt(types.MissingField, path+".amount", fmt.Sprintf("%s: price must have an amount", owner))
	case !price.Amount.Valid:
		f.errorAt(types.InvalidType, path+".amount", fmt.Sprintf("%s: price amount must be a number", owner))
	default:
		amountOk = true
		issues := PriceSchema.Validate(&priceValues{Amount: price.Amount.Value})
		for _, msg := range IssueMessages(issues) {
			f.errorAt(types.InvalidValue, path+".amount", fmt.Sprintf("%s: price %s", owner, msg))
			amountOk = false
		}
	}

	switch {
	case !price.Currency.Present:
		f.errorAt(types.MissingField, path+".currency", fmt.Sprintf("%s: price must have a currency", owner))
	case !price.Currency.Valid:
		f.errorAt(types.InvalidType, path+".currency", fmt.Sprintf("%s: price currency must be a string", owner))
	case strings.TrimSpace(price.Currency.Value) == "":
		f.errorAt(types.MissingField, path+".currency", fmt.Sprintf("%s: price currency must be a non-empty string", owner))
	}

	return price.Amount.Value, amountOk
}
