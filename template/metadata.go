package template

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/metalagman/stencil"
)

// Metadata records how an output directory was generated. It is written to
// the output root after a successful run.
type Metadata struct {
	StencilVersion string         `yaml:"stencil_version"`
	TemplateSource string         `yaml:"template_source"`
	TemplateRoot   string         `yaml:"template_root"`
	Answers        map[string]any `yaml:"answers"`
}

// Save writes the metadata file into outputRoot.
func (m Metadata) Save(outputRoot string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	path := filepath.Join(outputRoot, stencil.MetaFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// LoadMetadata reads a previously saved metadata file from outputRoot.
func LoadMetadata(outputRoot string) (Metadata, error) {
	path := filepath.Join(outputRoot, stencil.MetaFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read %s: %w", path, err)
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return m, nil
}
