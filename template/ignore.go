package template

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/metalagman/stencil"
)

// Entries never copied into the output: VCS metadata, hooks, the template's
// own configuration.
var defaultIgnorePatterns = []string{
	".git",
	".hg",
	".svn",
	".DS_Store",
	stencil.HooksDirName,
	stencil.IgnoreFileName,
	"stencil.json",
	"stencil.yaml",
	"stencil.yml",
}

// IgnoreSet decides which template entries are excluded from processing.
//
// Patterns use filepath.Match syntax. A pattern containing a slash is
// matched against the whole slash-separated path relative to the template
// root; a pattern without a slash is matched against every path segment,
// so ".git" ignores a .git directory at any depth. Matching a directory
// ignores everything beneath it.
type IgnoreSet struct {
	patterns []string
}

// LoadIgnoreSet builds the ignore set from the built-in patterns plus the
// template's .stencilignore file, when present. Blank lines and lines
// starting with '#' are skipped.
func LoadIgnoreSet(templateRoot string) (*IgnoreSet, error) {
	patterns := append([]string{}, defaultIgnorePatterns...)

	data, err := os.ReadFile(filepath.Join(templateRoot, stencil.IgnoreFileName))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", stencil.IgnoreFileName, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	// Reject bad patterns up front; filepath.Match reports syntax errors
	// only when it runs.
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, err)
		}
	}

	return &IgnoreSet{patterns: patterns}, nil
}

// Match reports whether the slash-separated path rel (relative to the
// template root) is ignored.
func (s *IgnoreSet) Match(rel string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." {
		return false
	}

	segments := strings.Split(rel, "/")

	for _, pattern := range s.patterns {
		if strings.Contains(pattern, "/") {
			if matchPrefix(pattern, rel) {
				return true
			}

			continue
		}

		for _, seg := range segments {
			if ok, _ := filepath.Match(pattern, seg); ok {
				return true
			}
		}
	}

	return false
}

// matchPrefix reports whether pattern matches rel or any ancestor of rel.
func matchPrefix(pattern, rel string) bool {
	for p := rel; p != "." && p != "/"; p = path.Dir(p) {
		if ok, _ := filepath.Match(pattern, p); ok {
			return true
		}
	}

	return false
}
