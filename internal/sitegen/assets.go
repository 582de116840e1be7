package sitegen

import (
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
	"git.home.luguber.info/inful/sitestamp/internal/logfields"
)

// AssetCopier mirrors asset directories from the template root into the output
// root without substitution.
type AssetCopier struct {
	templateRoot string
	outputRoot   string
	protected    map[string]struct{}
	logger       *slog.Logger
}

// NewAssetCopier creates a copier. Files whose slash-separated relative path is
// in protected are left alone, so templated files under an asset directory are
// not clobbered by their raw source.
func NewAssetCopier(templateRoot, outputRoot string, protected []string, logger *slog.Logger) *AssetCopier {
	if logger == nil {
		logger = slog.Default()
	}
	p := make(map[string]struct{}, len(protected))
	for _, rel := range protected {
		p[path.Clean(rel)] = struct{}{}
	}
	return &AssetCopier{
		templateRoot: templateRoot,
		outputRoot:   outputRoot,
		protected:    p,
		logger:       logger,
	}
}

// Copy mirrors one asset directory. It reports false without error when the
// directory does not exist in the template tree.
func (c *AssetCopier) Copy(dir string) (bool, error) {
	src, err := resolveUnder(c.templateRoot, dir)
	if err != nil {
		return false, c.fail(err, dir)
	}
	dst, err := resolveUnder(c.outputRoot, dir)
	if err != nil {
		return false, c.fail(err, dir)
	}

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Debug("Asset directory not present in template", logfields.Dir(dir))
			return false, nil
		}
		return false, c.fail(err, dir)
	}
	if !info.IsDir() {
		return false, c.fail(errors.AssetError("asset path is not a directory").Build(), dir)
	}

	if err := c.copyDir(src, dst, path.Clean(dir)); err != nil {
		return false, c.fail(err, dir)
	}
	c.logger.Info("Copied asset directory", logfields.Dir(dir))
	return true, nil
}

// copyDir recursively copies a directory tree; rel tracks the template-relative
// path of src for protection checks.
func (c *AssetCopier) copyDir(src, dst, rel string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()|0o700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		entryRel := path.Join(rel, entry.Name())

		if entry.IsDir() {
			if err := c.copyDir(srcPath, dstPath, entryRel); err != nil {
				return err
			}
			continue
		}
		if _, skip := c.protected[entryRel]; skip {
			c.logger.Debug("Keeping processed template over raw asset", logfields.File(entryRel))
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	// #nosec G304 -- src is under the validated template root.
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	// #nosec G304 -- dst is under the validated output root.
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

func (c *AssetCopier) fail(err error, dir string) error {
	ce, ok := errors.AsClassified(err)
	if !ok {
		ce = errors.WrapError(err, errors.CategoryAsset, "failed to copy asset directory").Warning().Build()
	}
	ce = ce.WithContext("dir", dir)
	c.logger.Warn("Failed to copy asset directory", logfields.Dir(dir), logfields.Error(err))
	return ce
}
