package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks root, collects files whose extension matches exts
// (case-insensitive, keys are lowercase with leading dot), and returns the
// paths sorted lexicographically for deterministic submission order.
// Traversal errors (missing root, unreadable directory) fail the whole
// discovery; there is no per-file skip at this stage.
func Discover(root string, exts map[string]bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if exts[ext] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
