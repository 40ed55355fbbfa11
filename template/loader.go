package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog/log"

	"github.com/metalagman/stencil"
)

// Resolve turns the template argument into a local directory path.
//
// An existing directory is used in place. A git URL is cloned into
// cacheDir, replacing any previous clone of the same repository.
func Resolve(src, cacheDir string) (string, error) {
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		abs, err := filepath.Abs(src)
		if err != nil {
			return "", fmt.Errorf("resolve template path: %w", err)
		}

		return abs, nil
	}

	if IsGitURL(src) {
		return cloneTemplate(src, cacheDir)
	}

	return "", fmt.Errorf("%w: %s", stencil.ErrTemplateNotFound, src)
}

// IsGitURL reports whether s looks like a git repository location.
// Recognized forms: https://, http://, git://, ssh:// URLs and the
// git@host:path scp syntax.
func IsGitURL(s string) bool {
	for _, prefix := range []string{"https://", "http://", "git://", "ssh://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	// scp syntax: user@host:path
	if strings.Contains(s, "@") && strings.Contains(s, ":") && !strings.Contains(s, "://") {
		return true
	}

	return false
}

// RepoName extracts the repository name from a git URL, trimming any .git
// suffix. Unparseable input falls back to "template".
func RepoName(repoURL string) string {
	if repoURL == "" {
		return "template"
	}

	s := repoURL
	if colon := strings.LastIndex(s, ":"); colon >= 0 && !strings.Contains(s, "://") {
		s = s[colon+1:]
	}

	parts := strings.Split(strings.TrimRight(s, "/"), "/")
	name := strings.TrimSuffix(parts[len(parts)-1], ".git")

	if name == "" || strings.ContainsAny(name, "@:") {
		return "template"
	}

	return name
}

func cloneTemplate(repoURL, cacheDir string) (string, error) {
	repoPath := filepath.Join(cacheDir, RepoName(repoURL))

	log.Debug().Str("url", repoURL).Str("path", repoPath).Msg("cloning template repository")

	// Replace any previous clone so the template is always current.
	if err := os.RemoveAll(repoPath); err != nil {
		return "", fmt.Errorf("remove existing clone: %w", err)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	repository, err := git.PlainClone(repoPath, false, &git.CloneOptions{
		URL:   repoURL,
		Depth: 1,
	})
	if err != nil {
		return "", fmt.Errorf("clone %s: %w", repoURL, err)
	}

	if ref, err := repository.Head(); err == nil {
		log.Info().Str("url", repoURL).Str("commit", ref.Hash().String()[:8]).Msg("template repository cloned")
	}

	return repoPath, nil
}
