package template

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter constructs a prompter reading answers from in and writing
// prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Text asks for a free-form string. An empty reply takes def. When secret
// is set and stdin is a terminal, echo is disabled while typing.
func (p *Prompter) Text(help, def string, secret bool) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", help, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", help)
	}

	line, err := p.read(secret)
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}

	return line, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(help string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", help, suffix)

	line, err := p.read(false)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Choose presents a numbered list and returns the selected choice.
func (p *Prompter) Choose(help string, choices []string, def string) (string, error) {
	fmt.Fprintln(p.out, help)
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
	}
	fmt.Fprint(p.out, "Select: ")

	line, err := p.read(false)
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" && def != "" {
		return def, nil
	}

	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(choices) {
		return "", fmt.Errorf("invalid selection %q", line)
	}

	return choices[idx-1], nil
}

// ChooseMany presents a numbered list and returns the choices selected by
// a comma-separated reply. An empty reply selects nothing.
func (p *Prompter) ChooseMany(help string, choices []string) ([]string, error) {
	fmt.Fprintln(p.out, help)
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
	}
	fmt.Fprint(p.out, "Select (comma-separated): ")

	line, err := p.read(false)
	if err != nil {
		return nil, err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	var selected []string
	for _, part := range strings.Split(line, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > len(choices) {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		selected = append(selected, choices[idx-1])
	}

	return selected, nil
}

func (p *Prompter) read(secret bool) (string, error) {
	if secret {
		if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			data, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(p.out)

			return string(data), err
		}
	}

	return p.line()
}

// line consumes exactly one line without buffering past the newline; the
// reader is shared with subsequent prompts.
func (p *Prompter) line() (string, error) {
	var b strings.Builder

	buf := make([]byte, 1)
	for {
		n, err := p.in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return "", err
		}
	}

	return strings.TrimRight(b.String(), "\r"), nil
}
