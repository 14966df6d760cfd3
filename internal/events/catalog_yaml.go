package events

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Events []EventDefinition `yaml:"events"`
}

// LoadCatalog decodes a YAML catalog:
//
//	events:
//	  - name: Recession
//	    description: Economic downturn
//	    probability: 0.08
//	    category: negative
//	    duration: 2
//	    effects:
//	      - kind: capital_destruction
//	        magnitude: 0.05
//
// Order in the file is the roll priority. Unknown fields and unknown shock
// kinds are rejected.
func LoadCatalog(r io.Reader) ([]EventDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := ValidateCatalog(file.Events); err != nil {
		return nil, err
	}
	return file.Events, nil
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) ([]EventDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}
