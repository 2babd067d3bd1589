package validation

import (
	"math"

	"github.com/chataigne/catalog-validator/src/types"
)

// extractCatalog projects the `catalog` object into typed collections.
// It never modifies the source document.
func extractCatalog(obj map[string]any) *types.Catalog {
	return &types.Catalog{
		Name:        getString(obj, "name"),
		Settings:    extractSettings(obj["settings"]),
		Categories:  getObjects(obj, "categories", extractCategory),
		OptionLists: getObjects(obj, "optionLists", extractOptionList),
		Options:     getObjects(obj, "options", extractOption),
		Products:    getObjects(obj, "products", extractProduct),
		Deals:       getObjects(obj, "deals", extractDeal),
		Discounts:   getObjects(obj, "discounts", extractDiscount),
	}
}

func extractCategory(i int, obj map[string]any) types.Category {
	return types.Category{
		Index: i,
		Name:  getString(obj, "name"),
		Ref:   getString(obj, "ref"),
	}
}

func extractOptionList(i int, obj map[string]any) types.OptionList {
	return types.OptionList{
		Index:         i,
		Name:          getString(obj, "name"),
		Ref:           getString(obj, "ref"),
		MinSelections: getIntField(obj, "minSelections"),
		MaxSelections: getIntField(obj, "maxSelections"),
	}
}

func extractOption(i int, obj map[string]any) types.Option {
	return types.Option{
		Index:          i,
		Name:           getString(obj, "name"),
		Ref:            getString(obj, "ref"),
		OptionListName: getString(obj, "optionListName"),
		Price:          extractPrice(obj["price"]),
		Available:      getBool(obj, "available"),
		ImageURL:       getString(obj, "imageUrl"),
	}
}

func extractProduct(i int, obj map[string]any) types.Product {
	product := types.Product{
		Index:        i,
		Name:         getString(obj, "name"),
		Ref:          getString(obj, "ref"),
		CategoryName: getString(obj, "categoryName"),
		Available:    getBool(obj, "available"),
		ImageURL:     getString(obj, "imageUrl"),
	}

	raw, present := obj["sku"]
	if !present || raw == nil {
		return product
	}
	product.SKU.Present = true
	sku, ok := raw.(map[string]any)
	if !ok {
		return product
	}
	product.SKU.IsObject = true
	product.SKU.Price = extractPrice(sku["price"])
	product.SKU.OptionListNames = getStrings(sku, "optionListNames")

	return product
}

func extractDeal(i int, obj map[string]any) types.Deal {
	return types.Deal{
		Index:        i,
		Name:         getString(obj, "name"),
		CategoryName: getString(obj, "categoryName"),
		Price:        extractPrice(obj["price"]),
		Lines:        getObjects(obj, "lines", extractDealLine),
	}
}

func extractDealLine(i int, obj map[string]any) types.DealLine {
	return types.DealLine{
		Index: i,
		SKUs:  getObjects(obj, "skus", extractDealSku),
	}
}

func extractDealSku(i int, obj map[string]any) types.DealSku {
	return types.DealSku{
		Index:   i,
		SkuName: getString(obj, "skuName"),
	}
}

func extractDiscount(i int, obj map[string]any) types.Discount {
	discount := types.Discount{
		Index: i,
		Name:  getString(obj, "name"),
		Type:  getString(obj, "discountType"),
		Level: getString(obj, "level"),
	}

	raw, present := obj["discountData"]
	discount.DataPresent = present && raw != nil
	data, isObject := raw.(map[string]any)
	discount.DataIsObject = isObject
	if data == nil {
		data = map[string]any{}
	}

	if !discount.Type.Ok() {
		return discount
	}

	// The payload is decoded by tag; unknown tags leave Data nil.
	switch types.DiscountType(discount.Type.Value) {
	case types.PercentageDiscount:
		discount.Data = types.PercentageData{Percentage: getNumber(data, "percentage")}
	case types.FixedDiscount:
		discount.Data = types.FixedData{Amount: getNumber(data, "amount")}
	case types.FreeProductDiscount:
		discount.Data = types.FreeProductData{
			ProductName: getString(data, "productName"),
			ProductID:   getString(data, "productId"),
		}
	case types.BogoDiscount:
		discount.Data = types.BogoData{
			ProductNames: getStrings(data, "productNames"),
			ProductIDs:   getStrings(data, "productIds"),
		}
	case types.FreeShippingDiscount:
		discount.Data = types.FreeShippingData{}
	}

	return discount
}

func extractSettings(raw any) types.Settings {
	if raw == nil {
		return types.Settings{}
	}
	settings := types.Settings{Present: true}
	obj, ok := raw.(map[string]any)
	if !ok {
		return settings
	}
	settings.IsObject = true
	settings.PrimaryCategories = getStrings(obj, "primaryCategories")
	return settings
}

func extractPrice(raw any) types.Price {
	if raw == nil {
		return types.Price{}
	}
	price := types.Price{Present: true}
	obj, ok := raw.(map[string]any)
	if !ok {
		return price
	}
	price.IsObject = true
	price.Amount = getNumber(obj, "amount")
	price.Currency = getString(obj, "currency")
	return price
}

// Field helpers

func getString(obj map[string]any, key string) types.Field[string] {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return types.Field[string]{}
	}
	str, ok := raw.(string)
	return types.Field[string]{Value: str, Present: true, Valid: ok}
}

func getBool(obj map[string]any, key string) types.Field[bool] {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return types.Field[bool]{}
	}
	b, ok := raw.(bool)
	return types.Field[bool]{Value: b, Present: true, Valid: ok}
}

func getNumber(obj map[string]any, key string) types.Field[float64] {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return types.Field[float64]{}
	}
	n, ok := getFloat(raw)
	return types.Field[float64]{Value: n, Present: true, Valid: ok}
}

func getIntField(obj map[string]any, key string) types.Field[int] {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return types.Field[int]{}
	}
	n, ok := getInt(raw)
	return types.Field[int]{Value: n, Present: true, Valid: ok}
}

func getStrings(obj map[string]any, key string) types.Seq[types.Field[string]] {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return types.Seq[types.Field[string]]{}
	}
	arr, ok := raw.([]any)
	if !ok {
		return types.Seq[types.Field[string]]{Present: true}
	}
	seq := types.Seq[types.Field[string]]{Present: true, Valid: true}
	for _, item := range arr {
		str, ok := item.(string)
		seq.Items = append(seq.Items, types.Field[string]{Value: str, Present: item != nil, Valid: ok})
	}
	return seq
}

// getObjects projects an array of objects. Non-object elements are recorded
// as malformed and skipped; projected items keep their document index.
func getObjects[T any](obj map[string]any, key string, project func(int, map[string]any) T) types.Seq[T] {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return types.Seq[T]{}
	}
	arr, ok := raw.([]any)
	if !ok {
		return types.Seq[T]{Present: true}
	}
	seq := types.Seq[T]{Present: true, Valid: true}
	for i, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			seq.Malformed = append(seq.Malformed, i)
			continue
		}
		seq.Items = append(seq.Items, project(i, m))
	}
	return seq
}

func getFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// getInt accepts whole JSON numbers that fit in an int.
func getInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		// -MinInt is a power of two, so it is exact as a float64 where MaxInt is not
		if v < math.MinInt || v >= -math.MinInt {
			return 0, false
		}
		return int(v), true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
