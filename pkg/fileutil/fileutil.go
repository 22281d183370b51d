// Package fileutil provides utility functions for working with file paths and
// file discovery.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var log = logger.New("fileutil:fileutil")

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// HasExtension reports whether the filename carries one of the given
// extensions. Comparison is case-insensitive and includes the leading dot.
func HasExtension(filename string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// CollectFiles walks the tree rooted at root and returns the paths of all
// regular files whose extension matches one of extensions, sorted for
// deterministic output. Unreadable subdirectories are skipped rather than
// aborting the walk. A nonexistent root is an error.
func CollectFiles(root string, extensions []string) ([]string, error) {
	if !DirExists(root) {
		return nil, fmt.Errorf("directory does not exist: %s", root)
	}

	var matched []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Skipping unreadable entry: path=%s, err=%v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if HasExtension(d.Name(), extensions) {
			matched = append(matched, path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipDir) {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(matched)
	log.Printf("Collected files: root=%s, count=%d", root, len(matched))
	return matched, nil
}

// WriteTempFile writes content to a file with the given pattern in the
// system temp directory and returns its path. The caller removes the file.
func WriteTempFile(pattern, content string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return f.Name(), nil
}
