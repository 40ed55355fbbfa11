package template

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metalagman/stencil"
)

func questionsConfig(questions ...NamedQuestion) Config {
	cfg := DefaultConfig()
	cfg.Questions = questions

	return cfg
}

func nonInteractiveCollector() *Collector {
	return &Collector{
		Engine:         NewEngine(),
		Prompter:       NewPrompter(strings.NewReader(""), io.Discard),
		NonInteractive: true,
	}
}

func TestCollectDefaults(t *testing.T) {
	cfg := questionsConfig(
		NamedQuestion{Name: "project_name", Question: Question{Type: TypeStr, Default: "demo"}},
		NamedQuestion{Name: "use_docker", Question: Question{Type: TypeBool, Default: true}},
		NamedQuestion{Name: "no_default", Question: Question{Type: TypeStr}},
	)

	answers, err := nonInteractiveCollector().Collect(cfg, nil, "", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if answers["project_name"] != "demo" {
		t.Errorf("unexpected project_name: %v", answers["project_name"])
	}
	if answers["use_docker"] != true {
		t.Errorf("unexpected use_docker: %v", answers["use_docker"])
	}
	if _, ok := answers["no_default"]; ok {
		t.Error("question without default must stay unanswered")
	}
}

func TestCollectPreHookOutputSeedsAnswers(t *testing.T) {
	cfg := questionsConfig(
		NamedQuestion{Name: "from_hook", Question: Question{Type: TypeStr, Default: "unused"}},
	)

	answers, err := nonInteractiveCollector().Collect(cfg, []byte(`{"from_hook":"hook-value"}`), "", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["from_hook"] != "hook-value" {
		t.Errorf("expected hook answer to win over default, got %v", answers["from_hook"])
	}
}

func TestCollectPreHookOutputNotJSON(t *testing.T) {
	cfg := questionsConfig(
		NamedQuestion{Name: "name", Question: Question{Default: "fallback"}},
	)

	answers, err := nonInteractiveCollector().Collect(cfg, []byte("just some log output\n"), "", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["name"] != "fallback" {
		t.Errorf("non-JSON hook output must be ignored, got %v", answers["name"])
	}
}

func TestCollectCLIAnswersOverrideHook(t *testing.T) {
	cfg := questionsConfig(NamedQuestion{Name: "name", Question: Question{}})

	answers, err := nonInteractiveCollector().Collect(cfg, []byte(`{"name":"from-hook"}`), `{"name":"from-cli"}`, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["name"] != "from-cli" {
		t.Errorf("CLI answers must override hook output, got %v", answers["name"])
	}
}

func TestCollectAnswersFromStdin(t *testing.T) {
	cfg := questionsConfig(NamedQuestion{Name: "name", Question: Question{}})

	answers, err := nonInteractiveCollector().Collect(cfg, nil, "-", strings.NewReader(`{"name":"via-stdin"}`))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["name"] != "via-stdin" {
		t.Errorf("unexpected answer: %v", answers["name"])
	}
}

func TestCollectAnswersFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	if err := os.WriteFile(path, []byte(`{"name":"via-file"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := questionsConfig(NamedQuestion{Name: "name", Question: Question{}})

	answers, err := nonInteractiveCollector().Collect(cfg, nil, "@"+path, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["name"] != "via-file" {
		t.Errorf("unexpected answer: %v", answers["name"])
	}
}

func TestCollectAnswersInvalidJSON(t *testing.T) {
	cfg := questionsConfig()

	if _, err := nonInteractiveCollector().Collect(cfg, nil, "{not json", nil); err == nil {
		t.Fatal("expected error for malformed --answers")
	}
}

func TestCollectTemplatedDefault(t *testing.T) {
	cfg := questionsConfig(
		NamedQuestion{Name: "project_name", Question: Question{Default: "demo"}},
		NamedQuestion{Name: "module", Question: Question{Default: "example.com/{{ snakeCase .project_name }}"}},
	)

	answers, err := nonInteractiveCollector().Collect(cfg, nil, "", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["module"] != "example.com/demo" {
		t.Errorf("unexpected templated default: %v", answers["module"])
	}
}

func TestCollectAskIfSkipsPrompt(t *testing.T) {
	// Interactive collector fed no input: if a skipped question were
	// prompted anyway the answer would come back empty instead of the
	// default.
	c := &Collector{
		Engine:   NewEngine(),
		Prompter: NewPrompter(strings.NewReader(""), io.Discard),
	}

	cfg := questionsConfig(
		NamedQuestion{Name: "use_ci", Question: Question{Type: TypeBool, Default: false}},
		NamedQuestion{Name: "ci_provider", Question: Question{Default: "github", AskIf: "{{ .use_ci }}"}},
	)

	answers, err := c.Collect(cfg, nil, `{"use_ci":false}`, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["ci_provider"] != "github" {
		t.Errorf("skipped question must take its default, got %v", answers["ci_provider"])
	}
}

func TestCollectSchemaValidation(t *testing.T) {
	schema := `{"type":"object","properties":{"port":{"type":"number"}},"required":["port"]}`
	cfg := questionsConfig(
		NamedQuestion{Name: "server", Question: Question{Type: TypeJSON, Schema: schema}},
	)

	if _, err := nonInteractiveCollector().Collect(cfg, nil, `{"server":{"port":"not-a-number"}}`, nil); !errors.Is(err, stencil.ErrAnswerInvalid) {
		t.Fatalf("expected ErrAnswerInvalid, got %v", err)
	}

	answers, err := nonInteractiveCollector().Collect(cfg, nil, `{"server":{"port":8080}}`, nil)
	if err != nil {
		t.Fatalf("collect valid answer: %v", err)
	}
	if answers["server"] == nil {
		t.Error("expected validated answer to be kept")
	}
}

func TestCollectInteractivePrompts(t *testing.T) {
	input := strings.NewReader("My App\ny\n2\n")

	c := &Collector{
		Engine:   NewEngine(),
		Prompter: NewPrompter(input, io.Discard),
	}

	cfg := questionsConfig(
		NamedQuestion{Name: "project_name", Question: Question{Help: "Project name", Default: "demo"}},
		NamedQuestion{Name: "use_docker", Question: Question{Type: TypeBool}},
		NamedQuestion{Name: "license", Question: Question{Choices: []string{"MIT", "Apache-2.0"}}},
	)

	answers, err := c.Collect(cfg, nil, "", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if answers["project_name"] != "My App" {
		t.Errorf("unexpected project_name: %v", answers["project_name"])
	}
	if answers["use_docker"] != true {
		t.Errorf("unexpected use_docker: %v", answers["use_docker"])
	}
	if answers["license"] != "Apache-2.0" {
		t.Errorf("unexpected license: %v", answers["license"])
	}
}

func TestCollectNumberPrompt(t *testing.T) {
	c := &Collector{
		Engine:   NewEngine(),
		Prompter: NewPrompter(strings.NewReader("8080\n"), io.Discard),
	}

	cfg := questionsConfig(NamedQuestion{Name: "port", Question: Question{Type: TypeNum}})

	answers, err := c.Collect(cfg, nil, "", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers["port"] != 8080.0 {
		t.Errorf("unexpected port: %v", answers["port"])
	}
}

func TestCollectNumberPromptRejectsText(t *testing.T) {
	c := &Collector{
		Engine:   NewEngine(),
		Prompter: NewPrompter(strings.NewReader("not-a-number\n"), io.Discard),
	}

	cfg := questionsConfig(NamedQuestion{Name: "port", Question: Question{Type: TypeNum}})

	if _, err := c.Collect(cfg, nil, "", nil); !errors.Is(err, stencil.ErrAnswerInvalid) {
		t.Fatalf("expected ErrAnswerInvalid, got %v", err)
	}
}

func TestCollectMultiselect(t *testing.T) {
	c := &Collector{
		Engine:   NewEngine(),
		Prompter: NewPrompter(strings.NewReader("1,3\n"), io.Discard),
	}

	cfg := questionsConfig(NamedQuestion{Name: "features", Question: Question{
		Choices:     []string{"auth", "api", "docs"},
		Multiselect: true,
	}})

	answers, err := c.Collect(cfg, nil, "", nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	features, ok := answers["features"].([]any)
	if !ok || len(features) != 2 || features[0] != "auth" || features[1] != "docs" {
		t.Errorf("unexpected features: %v", answers["features"])
	}
}
