package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
)

var (
	// ErrFileNotFound is returned when the catalog file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrParse is returned when the catalog file is not valid JSON.
	ErrParse = errors.New("invalid JSON")
)

// LoadFile reads and parses a catalog JSON file into a generic JSON value.
func LoadFile(filePath string) (any, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseJSON(data)
}

// ParseJSON parses catalog JSON data into a generic JSON value.
// Numbers decode as float64, objects as map[string]any.
func ParseJSON(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return doc, nil
}
