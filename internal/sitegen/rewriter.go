package sitegen

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
	"git.home.luguber.info/inful/sitestamp/internal/logfields"
	"git.home.luguber.info/inful/sitestamp/internal/tokens"
)

// Rewriter substitutes placeholders in template files and writes the result to
// the mirrored path under the output root.
type Rewriter struct {
	templateRoot string
	outputRoot   string
	replacer     *strings.Replacer
	logger       *slog.Logger
}

// NewRewriter binds a rewriter to a template root, an output root and a token map.
func NewRewriter(templateRoot, outputRoot string, tm *tokens.Map, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{
		templateRoot: templateRoot,
		outputRoot:   outputRoot,
		replacer:     tm.Replacer(),
		logger:       logger,
	}
}

// Rewrite processes one template-relative file. A missing source yields a
// not_found warning and leaves the output tree untouched; every other failure
// is a template warning. Neither is fatal to the run.
func (r *Rewriter) Rewrite(rel string) error {
	src, err := resolveUnder(r.templateRoot, rel)
	if err != nil {
		return r.fail(errors.TemplateError("invalid template path").WithCause(err), rel)
	}
	dst, err := resolveUnder(r.outputRoot, rel)
	if err != nil {
		return r.fail(errors.TemplateError("invalid output path").WithCause(err), rel)
	}

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return r.fail(errors.NewError(errors.CategoryNotFound, "template file not found").Warning().WithCause(err), rel)
		}
		return r.fail(errors.TemplateError("failed to stat template file").WithCause(err), rel)
	}
	if info.IsDir() {
		return r.fail(errors.TemplateError("template path is a directory"), rel)
	}

	// #nosec G304 -- src is validated to stay under the template root.
	content, err := os.ReadFile(src)
	if err != nil {
		return r.fail(errors.TemplateError("failed to read template file").WithCause(err), rel)
	}

	out := r.replacer.Replace(string(content))

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return r.fail(errors.TemplateError("failed to create output directory").WithCause(err), rel)
	}
	if err := os.WriteFile(dst, []byte(out), info.Mode().Perm()); err != nil {
		return r.fail(errors.TemplateError("failed to write output file").WithCause(err), rel)
	}
	// WriteFile only applies the mode on create.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return r.fail(errors.TemplateError("failed to set output file mode").WithCause(err), rel)
	}

	r.logger.Info("Processed template file", logfields.File(rel))
	return nil
}

func (r *Rewriter) fail(b *errors.ErrorBuilder, rel string) error {
	err := b.WithContext("file", rel).Build()
	r.logger.Warn(fmt.Sprintf("Skipping template file: %s", err.Message()), logfields.File(rel), logfields.Error(err.Cause()))
	return err
}
