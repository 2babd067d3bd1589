package validation

import (
	"fmt"
	"strings"

	"github.com/chataigne/catalog-validator/src/types"
)

func checkDiscounts(idx *index) findings {
	var f findings
	discounts := idx.catalog.Discounts
	checkCollection(&f, discounts, "discounts", "discount")

	for _, d := range discounts.Items {
		path := fmt.Sprintf("catalog.discounts[%d]", d.Index)
		owner := types.DisplayName(d.Name, "discount", d.Index, true)

		checkRequiredString(&f, d.Name, path+".name", owner, "name", true)

		if checkRequiredString(&f, d.Type, path+".discountType", owner, "discountType", true) && !isValidDiscountType(d.Type.Value) {
			f.errorAt(types.InvalidValue, path+".discountType",
				fmt.Sprintf("%s: discountType %q is invalid, expected one of: %s", owner, d.Type.Value, strings.Join(ValidDiscountTypes, ", ")))
		}
		if checkRequiredString(&f, d.Level, path+".level", owner, "level", idx.strict()) && !isValidDiscountLevel(d.Level.Value) {
			f.errorAt(types.InvalidValue, path+".level",
				fmt.Sprintf("%s: level %q is invalid, expected one of: %s", owner, d.Level.Value, strings.Join(ValidDiscountLevels, ", ")))
		}

		checkDiscountData(&f, idx, d, path+".discountData", owner)
	}
	return f
}

// checkDiscountData dispatches on the payload variant selected by discountType.
func checkDiscountData(f *findings, idx *index, d types.Discount, path, owner string) {
	if d.Data == nil {
		return
	}
	if _, free := d.Data.(types.FreeShippingData); free {
		return
	}

	if !d.DataPresent {
		f.errorAt(types.MissingField, path, fmt.Sprintf("%s: discountData is required for %s discounts", owner, d.Data.DiscountType()))
		return
	}
	if !d.DataIsObject {
		f.errorAt(types.InvalidType, path, fmt.Sprintf("%s: discountData must be an object", owner))
		return
	}

	switch data := d.Data.(type) {
	case types.PercentageData:
		if !data.Percentage.Ok() {
			f.errorAt(types.InvalidType, path+".percentage", fmt.Sprintf("%s: percentage is required and must be a number", owner))
			return
		}
		issues := PercentageSchema.Validate(&percentageValues{Percentage: data.Percentage.Value})
		for _, msg := range IssueMessages(issues) {
			f.warnAt(types.PercentageOutOfRange, path+".percentage", fmt.Sprintf("%s: %s, got %g", owner, msg, data.Percentage.Value))
		}

	case types.FixedData:
		if !data.Amount.Ok() {
			f.errorAt(types.InvalidType, path+".amount", fmt.Sprintf("%s: amount is required and must be a number", owner))
		}

	case types.FreeProductData:
		if !data.ProductName.Present && !data.ProductID.Present {
			f.errorAt(types.MissingField, path, fmt.Sprintf("%s: free_product discounts need productName or productId", owner))
			return
		}
		if data.ProductID.Present && !data.ProductID.Valid {
			f.errorAt(types.InvalidType, path+".productId", fmt.Sprintf("%s: productId must be a string", owner))
		}
		if data.ProductName.Present {
			if !data.ProductName.Valid {
				f.errorAt(types.InvalidType, path+".productName", fmt.Sprintf("%s: productName must be a string", owner))
				return
			}
			f.reference(idx.productNames, data.ProductName.Value, path+".productName",
				fmt.Sprintf("product %q referenced by %s is not defined", data.ProductName.Value, owner),
				idx.opts.SuggestionCutoff)
		}

	case types.BogoData:
		if !data.ProductNames.Present && !data.ProductIDs.Present {
			f.errorAt(types.MissingField, path, fmt.Sprintf("%s: bogo discounts need productNames or productIds", owner))
			return
		}
		if data.ProductIDs.Present && !data.ProductIDs.Valid {
			f.errorAt(types.InvalidType, path+".productIds", fmt.Sprintf("%s: productIds must be an array", owner))
		}
		for i, id := range data.ProductIDs.Items {
			if !id.Ok() {
				f.errorAt(types.InvalidType, fmt.Sprintf("%s.productIds[%d]", path, i), fmt.Sprintf("%s: productIds entries must be strings", owner))
			}
		}
		if data.ProductNames.Present && !data.ProductNames.Valid {
			f.errorAt(types.InvalidType, path+".productNames", fmt.Sprintf("%s: productNames must be an array", owner))
			return
		}
		for i, name := range data.ProductNames.Items {
			itemPath := fmt.Sprintf("%s.productNames[%d]", path, i)
			if !name.Ok() {
				f.errorAt(types.InvalidType, itemPath, fmt.Sprintf("%s: productNames entries must be strings", owner))
				continue
			}
			f.reference(idx.productNames, name.Value, itemPath,
				fmt.Sprintf("product %q referenced by %s is not defined", name.Value, owner),
				idx.opts.SuggestionCutoff)
		}
	}
}
