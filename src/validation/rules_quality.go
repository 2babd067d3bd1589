package validation

import (
	"fmt"
	"strings"

	"github.com/chataigne/catalog-validator/src/types"
)

// DefaultImageNameLimit caps the product names listed in one shared-image warning.
const DefaultImageNameLimit = 3

func checkSettings(idx *index) findings {
	var f findings
	settings := idx.catalog.Settings
	if !settings.Present {
		return f
	}
	if !settings.IsObject {
		f.errorAt(types.InvalidType, "catalog.settings", "settings must be an object")
		return f
	}

	primary := settings.PrimaryCategories
	if primary.Present && !primary.Valid {
		f.errorAt(types.InvalidType, "catalog.settings.primaryCategories", "settings: primaryCategories must be an array")
		return f
	}
	for i, name := range primary.Items {
		path := fmt.Sprintf("catalog.settings.primaryCategories[%d]", i)
		if !name.Ok() {
			f.errorAt(types.InvalidType, path, "settings: primaryCategories entries must be strings")
			continue
		}
		f.reference(idx.categoryNames, name.Value, path,
			fmt.Sprintf("primary category %q referenced in settings is not defined", name.Value),
			idx.opts.SuggestionCutoff)
	}
	return f
}

func checkImages(idx *index) findings {
	var f findings

	for _, p := range idx.catalog.Products.Items {
		path := fmt.Sprintf("catalog.products[%d].imageUrl", p.Index)
		owner := types.DisplayName(p.Name, "product", p.Index, true)

		switch {
		case !p.ImageURL.Present || (p.ImageURL.Valid && strings.TrimSpace(p.ImageURL.Value) == ""):
			f.warnAt(types.MissingImage, path, fmt.Sprintf("%s has no image", owner))
		case !p.ImageURL.Valid:
			f.warnAt(types.InvalidImageURL, path, fmt.Sprintf("%s: imageUrl must be a string", owner))
		case !isValidImageURL(p.ImageURL.Value):
			f.warnAt(types.InvalidImageURL, path, fmt.Sprintf("%s: imageUrl %q must start with http:// or https://", owner, p.ImageURL.Value))
		}
	}

	limit := idx.opts.ImageNameLimit
	for _, group := range idx.imageGroups {
		names := group.Products
		listed := strings.Join(names[:min(len(names), limit)], ", ")
		if extra := len(names) - limit; extra > 0 {
			listed += fmt.Sprintf(" +%d more", extra)
		}
		f.warnAt(types.DuplicateImageURL, "",
			fmt.Sprintf("image URL %s is shared by %d products (%s): only one of them will receive the image on import, add a unique query parameter to each URL",
				group.BaseURL, len(names), listed))
	}

	var withoutImage int
	for _, o := range idx.catalog.Options.Items {
		if !o.ImageURL.Ok() || strings.TrimSpace(o.ImageURL.Value) == "" {
			withoutImage++
		}
	}
	if withoutImage > 0 {
		f.warnAt(types.MissingOptionImage, "", fmt.Sprintf("%d option(s) have no image", withoutImage))
	}

	return f
}

// duplicateImageGroups groups products by image URL with the query string
// stripped, keeping only base URLs used by two or more products. Groups are
// ordered by first appearance.
func duplicateImageGroups(catalog *types.Catalog) []types.ImageGroup {
	var order []string
	byURL := make(map[string][]string)

	for _, p := range catalog.Products.Items {
		if !p.ImageURL.Ok() || strings.TrimSpace(p.ImageURL.Value) == "" {
			continue
		}
		base, _, _ := strings.Cut(p.ImageURL.Value, "?")
		if _, seen := byURL[base]; !seen {
			order = append(order, base)
		}
		byURL[base] = append(byURL[base], types.DisplayName(p.Name, "product", p.Index, false))
	}

	groups := []types.ImageGroup{}
	for _, base := range order {
		if products := byURL[base]; len(products) > 1 {
			groups = append(groups, types.ImageGroup{BaseURL: base, Products: products})
		}
	}
	return groups
}

func checkEmptyEntities(idx *index) findings {
	var f findings

	usedCategories := make(map[string]bool)
	for _, p := range idx.catalog.Products.Items {
		if p.CategoryName.Ok() {
			usedCategories[p.CategoryName.Value] = true
		}
	}
	for _, name := range idx.categoryNames.order {
		if !usedCategories[name] {
			f.warnAt(types.EmptyCategory, "", fmt.Sprintf("category %q has no products", name))
		}
	}

	usedOptionLists := make(map[string]bool)
	for _, o := range idx.catalog.Options.Items {
		if o.OptionListName.Ok() {
			usedOptionLists[o.OptionListName.Value] = true
		}
	}
	for _, name := range idx.optionListNames.order {
		if !usedOptionLists[name] {
			f.warnAt(types.EmptyOptionList, "", fmt.Sprintf("option list %q has no options", name))
		}
	}

	return f
}
