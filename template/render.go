package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// Engine renders template strings against an answers map.
type Engine struct {
	funcs template.FuncMap
}

// NewEngine constructs an engine with the stencil filter set.
func NewEngine() *Engine {
	return &Engine{funcs: filterFuncs()}
}

// Render executes text as a template with answers as the data. Referencing
// a missing answer is an error.
func (e *Engine) Render(name, text string, answers map[string]any) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(e.funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var b bytes.Buffer
	if err := tmpl.Execute(&b, answers); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}

	return b.String(), nil
}

// RenderTruthy renders a condition fragment and reports whether the result
// is truthy (true/1/yes, case-insensitive). An empty condition is true.
func (e *Engine) RenderTruthy(name, condition string, answers map[string]any) (bool, error) {
	if strings.TrimSpace(condition) == "" {
		return true, nil
	}

	out, err := e.Render(name, condition, answers)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(out)) {
	case "true", "1", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func filterFuncs() template.FuncMap {
	return template.FuncMap{
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"trim":      strings.TrimSpace,
		"title":     titleCase,
		"snakeCase": snakeCase,
		"kebabCase": kebabCase,
		"camelCase": camelCase,
		"replace": func(old, new, s string) string {
			return strings.ReplaceAll(s, old, new)
		},
		"default": func(def, value any) any {
			if value == nil {
				return def
			}
			if s, ok := value.(string); ok && s == "" {
				return def
			}

			return value
		},
	}
}

func titleCase(s string) string {
	prev := ' '

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(prev) || prev == '-' || prev == '_' {
			prev = r

			return unicode.ToUpper(r)
		}
		prev = r

		return r
	}, s)
}

func splitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0:
			flush()
			current.WriteRune(unicode.ToLower(r))
		default:
			current.WriteRune(unicode.ToLower(r))
		}
	}
	flush()

	return words
}

func snakeCase(s string) string {
	return strings.Join(splitWords(s), "_")
}

func kebabCase(s string) string {
	return strings.Join(splitWords(s), "-")
}

func camelCase(s string) string {
	words := splitWords(s)
	for i := 1; i < len(words); i++ {
		words[i] = strings.ToUpper(words[i][:1]) + words[i][1:]
	}

	return strings.Join(words, "")
}
