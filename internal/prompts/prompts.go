// Package prompts loads the ordered round prompt sequence. The
// sequence is fixed for the lifetime of the process; changing it
// requires a restart.
package prompts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default is the pilot-study sequence, used when no prompts file is
// provided.
var Default = []string{
	"Please submit a short hashtag response.",
	"Please submit another short hashtag response.",
	"Please submit another short hashtag response.",
}

type file struct {
	Rounds []string `yaml:"rounds"`
}

// Load reads a YAML prompts file of the form:
//
//	rounds:
//	  - "First prompt"
//	  - "Second prompt"
//
// The order of the list is the round order.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	return f.Rounds, nil
}
