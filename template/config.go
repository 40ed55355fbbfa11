// Package template implements template resolution, configuration, answer
// collection and rendering for stencil.
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metalagman/stencil"
)

// Config is the per-template configuration loaded from stencil.json,
// stencil.yaml or stencil.yml (first match wins). All fields are optional.
type Config struct {
	TemplateSuffix   string    `json:"template_suffix"    yaml:"template_suffix"`
	Questions        Questions `json:"questions"          yaml:"questions"`
	PreHookFilename  string    `json:"pre_hook_filename"  yaml:"pre_hook_filename"`
	PostHookFilename string    `json:"post_hook_filename" yaml:"post_hook_filename"`
	PreHookRunner    []string  `json:"pre_hook_runner"    yaml:"pre_hook_runner"`
	PostHookRunner   []string  `json:"post_hook_runner"   yaml:"post_hook_runner"`
	InteractiveHooks bool      `json:"interactive_hooks"  yaml:"interactive_hooks"`
	FollowSymlinks   bool      `json:"follow_symlinks"    yaml:"follow_symlinks"`
}

// DefaultConfig returns the configuration used when a template ships no
// config file.
func DefaultConfig() Config {
	return Config{
		TemplateSuffix:   stencil.DefaultTemplateSuffix,
		PreHookFilename:  stencil.DefaultPreHookName,
		PostHookFilename: stencil.DefaultPostHookName,
	}
}

// LoadConfig reads the template configuration from templateRoot.
// A template without a config file gets DefaultConfig.
func LoadConfig(templateRoot string) (Config, error) {
	for _, name := range stencil.ConfigFileNames {
		path := filepath.Join(templateRoot, name)

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		cfg := DefaultConfig()

		if strings.HasSuffix(name, ".json") {
			err = json.Unmarshal(data, &cfg)
		} else {
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}

		if err := cfg.Validate(); err != nil {
			return Config{}, err
		}

		return cfg, nil
	}

	return DefaultConfig(), nil
}

// Validate checks constraints the rest of the pipeline relies on.
func (c Config) Validate() error {
	if c.TemplateSuffix == "" {
		return fmt.Errorf("%w: template_suffix must not be empty", stencil.ErrConfigInvalid)
	}

	if !strings.HasPrefix(c.TemplateSuffix, ".") || len(c.TemplateSuffix) < 2 {
		return fmt.Errorf("%w: template_suffix must start with '.' and have at least 1 character after it", stencil.ErrConfigInvalid)
	}

	return nil
}

// NamedQuestion pairs a question with its answer key.
type NamedQuestion struct {
	Name string
	Question
}

// Questions preserves the declaration order of the config's question map.
// Order matters: prompts run in declared order and ask_if conditions may
// reference earlier answers.
type Questions []NamedQuestion

// UnmarshalYAML decodes a YAML mapping while keeping key order.
func (q *Questions) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("questions: expected a mapping, got %s", value.Tag)
	}

	out := make(Questions, 0, len(value.Content)/2)

	for i := 0; i < len(value.Content); i += 2 {
		var question Question
		if err := value.Content[i+1].Decode(&question); err != nil {
			return fmt.Errorf("question %q: %w", value.Content[i].Value, err)
		}

		out = append(out, NamedQuestion{Name: value.Content[i].Value, Question: question})
	}

	*q = out

	return nil
}

// UnmarshalJSON decodes a JSON object while keeping key order.
func (q *Questions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("questions: expected an object, got %v", tok)
	}

	var out Questions

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var question Question
		if err := dec.Decode(&question); err != nil {
			return fmt.Errorf("question %q: %w", key, err)
		}

		out = append(out, NamedQuestion{Name: key, Question: question})
	}

	*q = out

	return nil
}
