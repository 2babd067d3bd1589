package validation

import (
	"github.com/chataigne/catalog-validator/src/types"
)

// ValidateFile loads and validates a catalog JSON file.
// Errors are returned only when the file cannot be read or parsed.
func (v *Validator) ValidateFile(filePath string) (*types.Result, error) {
	doc, err := LoadFile(filePath)
	if err != nil {
		return nil, err
	}

	return v.Validate(doc), nil
}

// ValidateJSON validates catalog JSON data.
func (v *Validator) ValidateJSON(data []byte) (*types.Result, error) {
	doc, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}

	return v.Validate(doc), nil
}
