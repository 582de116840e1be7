package integration

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitestamp/internal/sitegen"
)

// runSite stamps templateDir with configPath into a fresh output directory.
func runSite(t *testing.T, configPath, templateDir string) (string, *sitegen.Report) {
	t.Helper()

	outputDir := filepath.Join(t.TempDir(), "site")
	report, err := sitegen.New(sitegen.Options{
		ConfigPath:   configPath,
		TemplateRoot: templateDir,
		OutputDir:    outputDir,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).Run()
	require.NoError(t, err, "site generation failed")
	return outputDir, report
}

// readTree returns every regular file under root keyed by slash-separated relative path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		// #nosec G304 -- test utility reading from test directories
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err, "failed to read tree %s", root)
	return files
}

// verifyOutputTree compares the generated tree against a golden directory.
// With updateGolden the golden directory is replaced by the generated tree.
func verifyOutputTree(t *testing.T, outputDir, goldenDir string, updateGolden bool) {
	t.Helper()

	actual := readTree(t, outputDir)

	if updateGolden {
		require.NoError(t, os.RemoveAll(goldenDir), "failed to clear golden directory")
		for rel, content := range actual {
			path := filepath.Join(goldenDir, filepath.FromSlash(rel))
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750), "failed to create golden directory")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to write golden file")
		}
		t.Logf("Updated golden tree: %s", goldenDir)
		return
	}

	expected := readTree(t, goldenDir)
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Fatalf("output tree mismatch (-golden +actual):\n%s", diff)
	}
}
