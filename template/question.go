package template

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/metalagman/stencil"
)

// Question types.
const (
	TypeStr  = "str"
	TypeBool = "bool"
	TypeNum  = "num"
	TypeJSON = "json"
)

// Question describes a single value asked from the user during generation.
type Question struct {
	// Type is one of str, bool, num, json. Empty means str.
	Type string `json:"type" yaml:"type"`
	// Help is the prompt text shown to the user.
	Help string `json:"help" yaml:"help"`
	// Default is the value used when the question is skipped. String
	// defaults may contain template expressions rendered against the
	// answers collected so far.
	Default any `json:"default" yaml:"default"`
	// Choices restricts the answer to a fixed set.
	Choices []string `json:"choices" yaml:"choices"`
	// Multiselect allows picking several choices; the answer is a list.
	Multiselect bool `json:"multiselect" yaml:"multiselect"`
	// Secret disables terminal echo while typing the answer.
	Secret bool `json:"secret" yaml:"secret"`
	// AskIf is a template fragment rendered against the answers collected
	// so far; the question is asked only when it renders to a truthy value
	// (true/1/yes). Empty means always ask.
	AskIf string `json:"ask_if" yaml:"ask_if"`
	// Schema is a JSON Schema applied to json-typed answers.
	Schema string `json:"schema" yaml:"schema"`
}

// EffectiveType normalizes the question type, defaulting to str.
func (q Question) EffectiveType() string {
	switch q.Type {
	case TypeBool, TypeNum, TypeJSON:
		return q.Type
	default:
		return TypeStr
	}
}

// ValidateAnswer checks value against the question's JSON schema, when one
// is declared. Non-json questions and schema-less questions always pass.
func (q Question) ValidateAnswer(name string, value any) error {
	if q.EffectiveType() != TypeJSON || strings.TrimSpace(q.Schema) == "" {
		return nil
	}

	schemaLoader := gojsonschema.NewStringLoader(q.Schema)
	docLoader := gojsonschema.NewGoLoader(value)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate answer %q: %w", name, err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		errs = append(errs, resultErr.String())
	}

	return fmt.Errorf("%w: %s: %s", stencil.ErrAnswerInvalid, name, strings.Join(errs, "; "))
}
