// Package vendordir locates vendor record files from a mix of file paths,
// directories and glob patterns.
package vendordir

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsVendorFile reports whether path has a vendor record extension.
func IsVendorFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// Collect expands paths into a sorted, de-duplicated list of vendor files.
// Directories contribute their immediate *.yaml / *.yml entries; anything
// containing glob metacharacters is matched with doublestar (so
// "_vendors/**/*.yaml" works). Paths that resolve to nothing are returned
// as skipped rather than failing the whole run.
func Collect(paths []string) (files []string, skipped []string) {
	seen := map[string]bool{}
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			entries, readErr := os.ReadDir(path)
			if readErr != nil {
				skipped = append(skipped, path)
				continue
			}
			for _, entry := range entries {
				if !entry.IsDir() && IsVendorFile(entry.Name()) {
					add(filepath.Join(path, entry.Name()))
				}
			}
		case err == nil && IsVendorFile(path):
			add(path)
		case isPattern(path):
			matches, globErr := doublestar.FilepathGlob(path)
			if globErr != nil || len(matches) == 0 {
				skipped = append(skipped, path)
				continue
			}
			for _, match := range matches {
				if IsVendorFile(match) {
					add(match)
				}
			}
		default:
			skipped = append(skipped, path)
		}
	}

	sort.Strings(files)
	return files, skipped
}

func isPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
