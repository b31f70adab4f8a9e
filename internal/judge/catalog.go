package judge

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Catalog holds the instructions and per-platform briefs sent to the judge.
type Catalog struct {
	Scoring struct {
		Instruction string `yaml:"instruction"`
	} `yaml:"scoring"`
	Copy struct {
		Instruction string            `yaml:"instruction"`
		DefaultSpec string            `yaml:"default_spec"`
		Platforms   map[string]string `yaml:"platforms"`
	} `yaml:"copy"`
	Message struct {
		Instruction  string            `yaml:"instruction"`
		DefaultBrief string            `yaml:"default_brief"`
		Types        map[string]string `yaml:"types"`
	} `yaml:"message"`
}

// LoadCatalog parses the embedded prompt catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(promptsYAML, &c); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	if strings.TrimSpace(c.Scoring.Instruction) == "" || strings.TrimSpace(c.Copy.Instruction) == "" || strings.TrimSpace(c.Message.Instruction) == "" {
		return nil, fmt.Errorf("prompt catalog: missing instruction")
	}
	return &c, nil
}

// PlatformSpec returns the writing brief for a platform.
func (c *Catalog) PlatformSpec(platform string) string {
	if spec, ok := c.Copy.Platforms[strings.ToLower(platform)]; ok {
		return spec
	}
	return c.Copy.DefaultSpec
}

// MessageBrief returns the writing brief for a message type.
func (c *Catalog) MessageBrief(messageType string) string {
	if brief, ok := c.Message.Types[strings.ToLower(messageType)]; ok {
		return brief
	}
	return c.Message.DefaultBrief
}
