package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// SourceExtensions are the file extensions Discover picks up inside
// directories. Files named explicitly are taken whatever their extension.
var SourceExtensions = []string{".vy", ".vyi"}

// Discover expands paths into the list of source files to annotate.
// Directories are walked recursively in lexical order; hidden directories
// are skipped. Duplicates are dropped, keeping the first occurrence, so the
// result order (and with it the source ids) follows the argument order.
func Discover(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(SourceExtensions, filepath.Ext(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return files, nil
}
