package greeting

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTemplates decodes a YAML mapping of category names to templates:
//
//	formal: "{salutation} {name}. {customMessage}"
//	custom: "[NOTICE] {customMessage}"
//
// An empty document yields an empty map.
func LoadTemplates(r io.Reader) (map[Category]string, error) {
	var raw map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[Category]string{}, nil
		}
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}

	templates := make(map[Category]string, len(raw))
	for name, tmpl := range raw {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if c == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrUnknownCategory)
		}
		templates[c] = tmpl
	}

	return templates, nil
}

// LoadTemplatesFile reads templates from a YAML file.
func LoadTemplatesFile(path string) (map[Category]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open templates file: %w", err)
	}
	defer f.Close()

	return LoadTemplates(f)
}
