package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadCatalog reads, parses, and validates the stage catalog at path. The
// document may be YAML or JSON — JSON is a YAML subset, so a single loader
// handles both.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tatcalcerrors.NewConfigNotFoundError(path, err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, tatcalcerrors.NewConfigParseError(path, extractLine(err), err)
	}

	if err := ValidateCatalog(&cat); err != nil {
		return nil, err
	}

	return &cat, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
