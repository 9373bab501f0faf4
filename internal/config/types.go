// Package config loads and validates the stage catalog: the document that
// describes the workflow's stages, their predecessor expressions, and the
// fallback/lead-time rules the resolver applies when projecting.
package config

import (
	"gopkg.in/yaml.v3"
)

// FallbackCalculation holds the expression evaluated when a stage has no
// resolvable predecessor anchor.
type FallbackCalculation struct {
	Expression string `yaml:"expression" validate:"required"`
}

// StageDescriptor is one entry of the stage catalog.
type StageDescriptor struct {
	ID                  string                 `validate:"required,stage_id"`
	Name                string                 `yaml:"name" validate:"required"`
	ActualTimestamp     string                 `yaml:"actual_timestamp,omitempty"`
	PrecedingStage      string                 `yaml:"preceding_stage,omitempty"`
	ProcessFlow         map[string]interface{} `yaml:"process_flow" validate:"required"`
	FallbackCalculation FallbackCalculation    `yaml:"fallback_calculation" validate:"required"`
	LeadTime            int                    `yaml:"lead_time" validate:"min=0"`
}

// Catalog is the ordered stage catalog: a sequence of descriptors in the
// order they appeared in the source document, plus an id → index lookup.
// Catalog order is preserved (rather than collapsed into an unordered map)
// because §4.3 and the matrix exporter both rely on "catalog order" for
// reproducible iteration and column layout.
type Catalog struct {
	Stages []StageDescriptor
	index  map[string]int
}

// UnmarshalYAML decodes the catalog from a YAML/JSON mapping node, walking
// key/value pairs in document order so Catalog.Stages preserves that order —
// a plain map[string]StageDescriptor would lose it.
func (c *Catalog) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return &yamlShapeError{msg: "stage catalog must be a mapping of stage-id to stage descriptor"}
	}

	stages := make([]StageDescriptor, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		var desc StageDescriptor
		if err := valNode.Decode(&desc); err != nil {
			return err
		}
		desc.ID = keyNode.Value
		stages = append(stages, desc)
	}

	c.Stages = stages
	c.index = buildIndex(stages)
	return nil
}

func buildIndex(stages []StageDescriptor) map[string]int {
	index := make(map[string]int, len(stages))
	for i, s := range stages {
		index[s.ID] = i
	}
	return index
}

// Lookup returns the descriptor for stageID and whether it exists.
func (c *Catalog) Lookup(stageID string) (StageDescriptor, bool) {
	if c.index == nil {
		c.index = buildIndex(c.Stages)
	}
	idx, ok := c.index[stageID]
	if !ok {
		return StageDescriptor{}, false
	}
	return c.Stages[idx], true
}

// Has reports whether stageID exists in the catalog.
func (c *Catalog) Has(stageID string) bool {
	_, ok := c.Lookup(stageID)
	return ok
}

type yamlShapeError struct{ msg string }

func (e *yamlShapeError) Error() string { return e.msg }
