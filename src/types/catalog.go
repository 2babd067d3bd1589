package types

import (
	"strconv"
	"strings"
)

// Field is a scalar projected out of the catalog document.
// Present is false when the key is absent or null, Valid is false when the
// key is present but holds a value of the wrong JSON type.
type Field[T any] struct {
	Value   T
	Present bool
	Valid   bool
}

// Ok reports whether the field is present and well typed.
func (f Field[T]) Ok() bool {
	return f.Present && f.Valid
}

// Seq is an array projected out of the catalog document.
// Malformed holds the indexes of elements that could not be projected
// (non-object entries in an entity list).
type Seq[T any] struct {
	Items     []T
	Present   bool
	Valid     bool
	Malformed []int
}

// Price is the `{amount, currency}` object used by options, skus and deals.
type Price struct {
	Present  bool
	IsObject bool
	Amount   Field[float64]
	Currency Field[string]
}

// Category groups products.
type Category struct {
	Index int
	Name  Field[string]
	Ref   Field[string]
}

// OptionList is a named group of choosable options with selection bounds.
type OptionList struct {
	Index         int
	Name          Field[string]
	Ref           Field[string]
	MinSelections Field[int]
	MaxSelections Field[int]
}

// Option belongs to an option list by name.
type Option struct {
	Index          int
	Name           Field[string]
	Ref            Field[string]
	OptionListName Field[string]
	Price          Price
	Available      Field[bool]
	ImageURL       Field[string]
}

// SKU is the purchasable unit of a product.
type SKU struct {
	Present         bool
	IsObject        bool
	Price           Price
	OptionListNames Seq[Field[string]]
}

// Product is a sellable item in a category.
type Product struct {
	Index        int
	Name         Field[string]
	Ref          Field[string]
	CategoryName Field[string]
	Available    Field[bool]
	SKU          SKU
	ImageURL     Field[string]
}

// DealSku is one choice within a deal line. SkuName is either "Product" or
// "Product (option description)".
type DealSku struct {
	Index   int
	SkuName Field[string]
}

// DealLine is one slot of a deal, offering a choice of skus.
type DealLine struct {
	Index int
	SKUs  Seq[DealSku]
}

// Deal is a bundled offer.
type Deal struct {
	Index        int
	Name         Field[string]
	CategoryName Field[string]
	Price        Price
	Lines        Seq[DealLine]
}

// Discount is a promotion whose payload shape depends on its type.
// Data is nil when the discount type is missing or unknown.
type Discount struct {
	Index        int
	Name         Field[string]
	Type         Field[string]
	Level        Field[string]
	DataPresent  bool
	DataIsObject bool
	Data         DiscountData
}

// Settings holds catalog level settings.
type Settings struct {
	Present           bool
	IsObject          bool
	PrimaryCategories Seq[Field[string]]
}

// Catalog is the typed projection of the `catalog` root object.
type Catalog struct {
	Name        Field[string]
	Settings    Settings
	Categories  Seq[Category]
	OptionLists Seq[OptionList]
	Options     Seq[Option]
	Products    Seq[Product]
	Deals       Seq[Deal]
	Discounts   Seq[Discount]
}

// DisplayName returns the entity name for messages, or a positional fallback
// such as `product #2` when the name is missing or blank. Quoted names carry
// the kind prefix: `product "Margherita"`.
func DisplayName(name Field[string], kind string, index int, quoted bool) string {
	if !name.Ok() || strings.TrimSpace(name.Value) == "" {
		return kind + " #" + strconv.Itoa(index)
	}
	if quoted {
		return kind + " " + strconv.Quote(name.Value)
	}
	return name.Value
}
