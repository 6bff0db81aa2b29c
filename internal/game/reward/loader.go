package reward

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads and validates a single reward table YAML file. Unknown
// fields are rejected.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading reward table %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		return Table{}, fmt.Errorf("parsing reward table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("validating reward table %s: %w", path, err)
	}
	return t, nil
}
