package sitegen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveUnder joins a slash-separated relative path onto root and refuses
// anything that would land outside it.
func resolveUnder(root, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("path is required")
	}
	cleanRel := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q must be relative to %s", rel, root)
	}
	full := filepath.Join(root, cleanRel)
	back, err := filepath.Rel(root, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes %s", rel, root)
	}
	return full, nil
}
