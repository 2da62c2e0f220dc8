package patrimoine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatOf returns the snapshot format of a file from its extension. Anything
// that is not YAML is read as JSON.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadPortfolio opens and decodes the snapshot file at path. currency is used
// when the snapshot does not declare one.
func LoadPortfolio(path, currency string) (*Portfolio, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open portfolio file %q: %w", path, err)
	}
	defer f.Close()

	pf, warnings, err := decodePortfolio(f, FormatOf(path), currency)
	if err != nil {
		return nil, warnings, fmt.Errorf("could not decode portfolio file %q: %w", path, err)
	}
	return pf, warnings, nil
}
