package object

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// minPrefixLen is the shortest accepted abbreviation. Two characters
// would name an entire shard directory, so three is the floor.
const minPrefixLen = 3

// Resolve expands a full hash or an unambiguous prefix to the hash of a
// stored object. It fails with ErrNotFound when nothing matches and
// ErrAmbiguous when the prefix matches more than one object. A full
// 40-character id resolves without scanning only if it exists.
func (s *Store) Resolve(idOrPrefix string) (Hash, error) {
	if len(idOrPrefix) < minPrefixLen {
		return "", fmt.Errorf("resolve %q: prefix shorter than %d characters", idOrPrefix, minPrefixLen)
	}
	if len(idOrPrefix) > HexHashLen {
		return "", fmt.Errorf("resolve %q: longer than a full hash: %w", idOrPrefix, ErrNotFound)
	}

	if len(idOrPrefix) == HexHashLen {
		h := Hash(idOrPrefix)
		if s.Has(h) {
			return h, nil
		}
		return "", fmt.Errorf("resolve %q: %w", idOrPrefix, ErrNotFound)
	}

	dir, rest := splitHash(idOrPrefix)
	entries, err := os.ReadDir(filepath.Join(s.root, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("resolve %q: %w", idOrPrefix, ErrNotFound)
		}
		return "", fmt.Errorf("resolve %q: %w", idOrPrefix, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasPrefix(entry.Name(), rest) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("resolve %q: %w", idOrPrefix, ErrNotFound)
	case 1:
		return Hash(dir + matches[0]), nil
	default:
		return "", fmt.Errorf("resolve %q: %w: %d matches", idOrPrefix, ErrAmbiguous, len(matches))
	}
}
