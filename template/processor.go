package template

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Processor walks a template tree and materializes it under the output
// root: suffix-bearing files are rendered, everything else is copied.
type Processor struct {
	Engine       *Engine
	Config       Config
	Ignore       *IgnoreSet
	TemplateRoot string
	OutputRoot   string
	Answers      map[string]any
	DryRun       bool

	// ConfirmOverwrite is consulted when a destination file already
	// exists. Nil means always overwrite.
	ConfirmOverwrite func(dest string) (bool, error)
}

// Process walks the template root and produces the output tree.
func (p *Processor) Process() error {
	return filepath.WalkDir(p.TemplateRoot, func(srcPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(p.TemplateRoot, srcPath)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if p.Ignore.Match(rel) {
			log.Debug().Str("path", rel).Msg("ignored")
			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return p.processSymlink(srcPath, rel)
		}

		destRel, skip, err := p.renderPath(rel)
		if err != nil {
			return err
		}
		if skip {
			log.Debug().Str("path", rel).Msg("skipped: path rendered empty")
			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			return p.makeDir(destRel)
		}

		return p.processFile(srcPath, destRel)
	})
}

func (p *Processor) processSymlink(srcPath, rel string) error {
	if !p.Config.FollowSymlinks {
		log.Debug().Str("path", rel).Msg("skipped symlink")

		return nil
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("stat symlink target %s: %w", srcPath, err)
	}
	if info.IsDir() {
		// Directory symlinks are not expanded; linking a directory into a
		// template and following it can recurse into the template itself.
		log.Warn().Str("path", rel).Msg("skipped symlink to directory")

		return nil
	}

	destRel, skip, err := p.renderPath(rel)
	if err != nil || skip {
		return err
	}

	return p.processFile(srcPath, destRel)
}

// renderPath renders template expressions inside the relative path. A path
// segment that renders to an empty string skips the entry entirely.
func (p *Processor) renderPath(rel string) (string, bool, error) {
	rendered, err := p.Engine.Render(rel, filepath.ToSlash(rel), p.Answers)
	if err != nil {
		return "", false, err
	}

	for _, seg := range strings.Split(rendered, "/") {
		if strings.TrimSpace(seg) == "" {
			return "", true, nil
		}
	}

	return filepath.FromSlash(rendered), false, nil
}

func (p *Processor) makeDir(destRel string) error {
	dest := filepath.Join(p.OutputRoot, destRel)

	if p.DryRun {
		log.Info().Str("path", dest).Msg("would create directory")

		return nil
	}

	return os.MkdirAll(dest, 0o755)
}

func (p *Processor) processFile(srcPath, destRel string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", srcPath, err)
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", srcPath, err)
	}

	isTemplate := strings.HasSuffix(destRel, p.Config.TemplateSuffix)
	if isTemplate {
		rendered, err := p.Engine.Render(destRel, string(content), p.Answers)
		if err != nil {
			return err
		}
		content = []byte(rendered)
		destRel = strings.TrimSuffix(destRel, p.Config.TemplateSuffix)
	}

	dest := filepath.Join(p.OutputRoot, destRel)

	if _, err := os.Stat(dest); err == nil && p.ConfirmOverwrite != nil {
		overwrite, err := p.ConfirmOverwrite(dest)
		if err != nil {
			return err
		}
		if !overwrite {
			log.Info().Str("path", dest).Msg("kept existing file")

			return nil
		}
	}

	if p.DryRun {
		verb := "would copy"
		if isTemplate {
			verb = "would render"
		}
		log.Info().Str("path", dest).Msg(verb)

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
	}

	if err := os.WriteFile(dest, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	log.Debug().Str("src", srcPath).Str("dest", dest).Bool("rendered", isTemplate).Msg("processed file")

	return nil
}
