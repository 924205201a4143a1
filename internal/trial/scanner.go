package trial

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDataExt is the recognized data-file extension.
const DefaultDataExt = ".txt"

// ListDataFiles enumerates the files directly inside dir whose extension
// matches ext (case-insensitive). Subdirectories and other extensions are
// ignored. The result is sorted lexicographically for reproducible output.
// A directory with no matching files yields an empty slice, not an error.
func ListDataFiles(dir, ext string) ([]string, error) {
	if err := statDir(dir); err != nil {
		return nil, err
	}

	if ext == "" {
		ext = DefaultDataExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// ListConditionDirs enumerates the immediate subdirectories of root, one per
// experimental condition. Hidden directories are skipped. The result is
// sorted lexicographically; callers impose the condition key order.
func ListConditionDirs(root string) ([]string, error) {
	if err := statDir(root); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, entry.Name())
	}

	sort.Strings(dirs)
	return dirs, nil
}

// statDir validates that path exists and is a directory.
func statDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return nil
}
