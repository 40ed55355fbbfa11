package template

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/metalagman/stencil"
)

// Collector gathers answers from, in order of precedence: pre-hook stdout,
// the --answers argument, and interactive prompts. A question answered by
// an earlier source is not asked again.
type Collector struct {
	Engine         *Engine
	Prompter       *Prompter
	NonInteractive bool
}

// Collect produces the final answers map for rendering.
//
// preHookOutput is parsed as a JSON object when possible; anything else is
// logged and discarded, matching the contract that hooks may print
// arbitrary diagnostics. cliAnswers is inline JSON, "@<path>" for a file,
// or "-" to read stdin.
func (c *Collector) Collect(cfg Config, preHookOutput []byte, cliAnswers string, stdin io.Reader) (map[string]any, error) {
	answers := map[string]any{}

	if len(preHookOutput) > 0 {
		var parsed any
		if err := json.Unmarshal(preHookOutput, &parsed); err != nil {
			log.Warn().Err(err).Msg("pre-hook output is not JSON, ignoring")
		} else if obj, ok := parsed.(map[string]any); ok {
			merge(answers, obj)
		} else {
			log.Warn().Msg("pre-hook output is not a JSON object, ignoring")
		}
	}

	if cliAnswers != "" {
		provided, err := parseAnswersArg(cliAnswers, stdin)
		if err != nil {
			return nil, err
		}
		merge(answers, provided)
	}

	for _, nq := range cfg.Questions {
		if err := c.collectOne(nq, answers); err != nil {
			return nil, err
		}
	}

	return answers, nil
}

func (c *Collector) collectOne(nq NamedQuestion, answers map[string]any) error {
	if value, ok := answers[nq.Name]; ok {
		return nq.ValidateAnswer(nq.Name, value)
	}

	ask, err := c.Engine.RenderTruthy(nq.Name+".ask_if", nq.AskIf, answers)
	if err != nil {
		return err
	}

	def, err := c.renderDefault(nq, answers)
	if err != nil {
		return err
	}

	if c.NonInteractive || !ask {
		if def == nil {
			return nil
		}
		if err := nq.ValidateAnswer(nq.Name, def); err != nil {
			return err
		}
		answers[nq.Name] = def

		return nil
	}

	value, err := c.prompt(nq, def)
	if err != nil {
		return err
	}

	if err := nq.ValidateAnswer(nq.Name, value); err != nil {
		return err
	}
	answers[nq.Name] = value

	return nil
}

// renderDefault resolves the question's default, rendering string defaults
// as templates against the answers collected so far.
func (c *Collector) renderDefault(nq NamedQuestion, answers map[string]any) (any, error) {
	s, ok := nq.Default.(string)
	if !ok {
		return nq.Default, nil
	}

	rendered, err := c.Engine.Render(nq.Name+".default", s, answers)
	if err != nil {
		return nil, err
	}

	return rendered, nil
}

func (c *Collector) prompt(nq NamedQuestion, def any) (any, error) {
	help := nq.Help
	if help == "" {
		help = nq.Name
	}

	switch {
	case len(nq.Choices) > 0 && nq.Multiselect:
		selected, err := c.Prompter.ChooseMany(help, nq.Choices)
		if err != nil {
			return nil, err
		}

		return toAnyList(selected), nil

	case len(nq.Choices) > 0:
		defStr, _ := def.(string)

		return c.Prompter.Choose(help, nq.Choices, defStr)
	}

	switch nq.EffectiveType() {
	case TypeBool:
		defBool, _ := def.(bool)

		return c.Prompter.Confirm(help, defBool)

	case TypeNum:
		defStr := numToString(def)

		line, err := c.Prompter.Text(help, defStr, false)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return nil, fmt.Errorf("%w: %s: a number is required", stencil.ErrAnswerInvalid, nq.Name)
		}

		n, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a number", stencil.ErrAnswerInvalid, nq.Name, line)
		}

		return n, nil

	case TypeJSON:
		defStr, _ := def.(string)

		line, err := c.Prompter.Text(help, defStr, false)
		if err != nil {
			return nil, err
		}

		var value any
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", stencil.ErrAnswerInvalid, nq.Name, err)
		}

		return value, nil

	default:
		defStr, _ := def.(string)

		return c.Prompter.Text(help, defStr, nq.Secret)
	}
}

func parseAnswersArg(arg string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case arg == stencil.StdinIndicator:
		data, err = io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		data, err = os.ReadFile(strings.TrimPrefix(arg, "@"))
	default:
		data = []byte(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}

	return out, nil
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

func toAnyList(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}

	return out
}

func numToString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprint(v)
	}
}
