package types

// DiscountType selects the shape of a discount's payload.
type DiscountType string

const (
	PercentageDiscount   DiscountType = "percentage"
	FixedDiscount        DiscountType = "fixed"
	FreeProductDiscount  DiscountType = "free_product"
	BogoDiscount         DiscountType = "bogo"
	FreeShippingDiscount DiscountType = "free_shipping"
)

var AllDiscountTypes = []DiscountType{
	PercentageDiscount, FixedDiscount, FreeProductDiscount,
	BogoDiscount, FreeShippingDiscount,
}

// DiscountLevel controls how a discount is surfaced to customers.
type DiscountLevel string

const (
	PushedLevel DiscountLevel = "pushed"
	PublicLevel DiscountLevel = "public"
	HiddenLevel DiscountLevel = "hidden"
)

var AllDiscountLevels = []DiscountLevel{PushedLevel, PublicLevel, HiddenLevel}

// DiscountData is the payload of a discount, one implementation per DiscountType.
type DiscountData interface {
	DiscountType() DiscountType
}

type PercentageData struct {
	Percentage Field[float64]
}

type FixedData struct {
	Amount Field[float64]
}

// FreeProductData needs at least one of ProductName or ProductID.
type FreeProductData struct {
	ProductName Field[string]
	ProductID   Field[string]
}

// BogoData needs at least one of ProductNames or ProductIDs.
type BogoData struct {
	ProductNames Seq[Field[string]]
	ProductIDs   Seq[Field[string]]
}

type FreeShippingData struct{}

func (PercentageData) DiscountType() DiscountType   { return PercentageDiscount }
func (FixedData) DiscountType() DiscountType        { return FixedDiscount }
func (FreeProductData) DiscountType() DiscountType  { return FreeProductDiscount }
func (BogoData) DiscountType() DiscountType         { return BogoDiscount }
func (FreeShippingData) DiscountType() DiscountType { return FreeShippingDiscount }
