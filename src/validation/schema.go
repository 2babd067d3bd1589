package validation

import (
	"sort"
	"strings"

	"github.com/Oudwins/zog"
	"github.com/chataigne/catalog-validator/src/types"
)

// ValidDiscountTypes contains all valid discountType values
var ValidDiscountTypes = func() []string {
	out := make([]string, 0, len(types.AllDiscountTypes))
	for _, t := range types.AllDiscountTypes {
		out = append(out, string(t))
	}
	return out
}()

// ValidDiscountLevels contains all valid level values
var ValidDiscountLevels = func() []string {
	out := make([]string, 0, len(types.AllDiscountLevels))
	for _, l := range types.AllDiscountLevels {
		out = append(out, string(l))
	}
	return out
}()

// isValidDiscountType checks if a string is a valid discount type
func isValidDiscountType(val string) bool {
	for _, valid := range ValidDiscountTypes {
		if val == valid {
			return true
		}
	}
	return false
}

// isValidDiscountLevel checks if a string is a valid discount level
func isValidDiscountLevel(val string) bool {
	for _, valid := range ValidDiscountLevels {
		if val == valid {
			return true
		}
	}
	return false
}

// isValidImageURL checks that an image URL is absolute http(s)
func isValidImageURL(val string) bool {
	return strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://")
}

// priceValues holds a price amount once it is known to be a number
type priceValues struct {
	Amount float64
}

// PriceSchema validates the bounds of a price amount
var PriceSchema = zog.Struct(zog.Shape{
	"amount": zog.Float64().GTE(0, zog.Message("amount must be >= 0")),
})

// selectionValues holds the lower selection bound of an option list
type selectionValues struct {
	MinSelections int
}

// SelectionSchema validates option list selection bounds
var SelectionSchema = zog.Struct(zog.Shape{
	"minSelections": zog.Int().GTE(0, zog.Message("minSelections must be >= 0")),
})

// percentageValues holds the payload of a percentage discount
type percentageValues struct {
	Percentage float64
}

const percentageRangeMessage = "percentage should be within (0, 100]"

// PercentageSchema flags percentages outside (0, 100]
var PercentageSchema = zog.Struct(zog.Shape{
	"percentage": zog.Float64().
		Required(zog.Message(percentageRangeMessage)).
		GT(0, zog.Message(percentageRangeMessage)).
		LTE(100, zog.Message(percentageRangeMessage)),
})

// IssueMessages flattens zog issues into a sorted, de-duplicated message list
func IssueMessages(issues zog.ZogIssueMap) []string {
	if len(issues) == 0 {
		return nil
	}

	keys := make([]string, 0, len(issues))
	for key := range issues {
		// "$first" repeats the first issue of the map
		if key == "$first" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]bool)
	var messages []string
	for _, key := range keys {
		for _, issue := range issues[key] {
			if issue == nil || seen[issue.Message] {
				continue
			}
			seen[issue.Message] = true
			messages = append(messages, issue.Message)
		}
	}
	return messages
}
