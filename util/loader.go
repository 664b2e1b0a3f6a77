package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RawFile represents a camera RAW file discovered on disk.
type RawFile struct {
	// Path is the path to the RAW file.
	Path string
	// Size is the file size in bytes.
	Size int64
}

// rawExtensions lists the RAW container extensions worth handing to the
// decoder, lowercased.
var rawExtensions = map[string]bool{
	".cr2": true,
	".cr3": true,
	".nef": true,
	".arw": true,
	".dng": true,
	".raf": true,
	".orf": true,
	".rw2": true,
}

// IsRawFile reports whether the path has a recognized RAW extension.
func IsRawFile(path string) bool {
	return rawExtensions[strings.ToLower(filepath.Ext(path))]
}

// LoadDirectoryRawFiles finds all RAW files directly inside a directory.
//
// Arguments:
// - dir: Directory path to scan.
//
// Returns:
// - []RawFile: Discovered RAW files, sorted by path.
// - error: Error if the directory cannot be read.
func LoadDirectoryRawFiles(dir string) ([]RawFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []RawFile
	for _, entry := range entries {
		if entry.IsDir() || !IsRawFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, RawFile{
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}
