package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/gritvcs/grit/pkg/object"
)

// ignoredDirs are directory names never descended into when building a
// snapshot: the repository's own metadata directory and the build
// output directory.
var ignoredDirs = map[string]bool{
	gitDirName: true,
	"target":   true,
}

// Snapshot recursively stores the contents of dir and returns the hash
// of the resulting tree object. The walk is depth-first and post-order:
// blobs and subtrees are fully written before the parent tree that
// references them, since the parent's hash depends on theirs.
//
// Regular files become blobs (content must be UTF-8 text), with mode
// 100755 when any execute bit is set and 100644 otherwise. Directories
// outside the ignore set recurse into subtrees with mode 40000. Other
// entry kinds (symlinks, sockets) are skipped. Entries are sorted by
// name byte-wise before encoding, so two directories holding the same
// content hash identically regardless of enumeration order.
func (r *Repo) Snapshot(dir string) (object.Hash, error) {
	entries, err := r.snapshotEntries(dir)
	if err != nil {
		return "", err
	}
	h, err := r.Store.WriteTree(&object.TreeObj{Entries: entries})
	if err != nil {
		return "", fmt.Errorf("snapshot %s: %w", dir, err)
	}
	return h, nil
}

func (r *Repo) snapshotEntries(dir string) ([]object.TreeEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", dir, err)
	}

	var entries []object.TreeEntry
	for _, de := range dirEntries {
		full := filepath.Join(dir, de.Name())

		switch {
		case de.Type().IsRegular():
			info, err := de.Info()
			if err != nil {
				return nil, fmt.Errorf("snapshot %s: stat: %w", full, err)
			}
			content, err := os.ReadFile(full)
			if err != nil {
				return nil, fmt.Errorf("snapshot %s: %w", full, err)
			}
			if !utf8.Valid(content) {
				return nil, fmt.Errorf("snapshot %s: %w", full, object.ErrInvalidEncoding)
			}
			h, err := r.Store.WriteBlob(&object.Blob{Data: content})
			if err != nil {
				return nil, fmt.Errorf("snapshot %s: %w", full, err)
			}
			entries = append(entries, object.TreeEntry{
				Name: de.Name(),
				Mode: modeFromFileInfo(info),
				Hash: h,
			})

		case de.IsDir():
			if ignoredDirs[de.Name()] {
				continue
			}
			h, err := r.Snapshot(full)
			if err != nil {
				return nil, err
			}
			entries = append(entries, object.TreeEntry{
				Name: de.Name(),
				Mode: object.ModeDir,
				Hash: h,
			})

		default:
			// Neither a regular file nor a directory; skipped.
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
