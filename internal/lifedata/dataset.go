package lifedata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// LoadDataset reads a dataset from a .json, .yaml or .yml file and
// validates it.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &ds)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ds)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	if err := Validate(ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// DatasetSchema returns the JSON schema of the import format.
func DatasetSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Dataset{})
	schema.Title = "lifelens dataset"
	schema.Description = "Social posts, location visits and daily activity recorded for one period."
	return json.MarshalIndent(schema, "", "  ")
}
