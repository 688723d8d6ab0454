package object

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: <root>/ab/cdef0123... Objects are zlib-compressed
// "type len\0body" envelopes, and the hash is the SHA-1 of the
// uncompressed envelope.
//
// The root is an explicit parameter so multiple stores can coexist in
// one process. The store does no locking of its own: writes rely on the
// filesystem's exclusive-create atomicity, which is sufficient because
// identical hashes imply identical content.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given objects directory. Shard
// directories are created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's objects directory.
func (s *Store) Root() string {
	return s.root
}

// splitHash splits a hex identifier into its shard directory name
// (first 2 characters) and the remainder used as the filename.
func splitHash(id string) (dir, rest string) {
	return id[:2], id[2:]
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	dir, rest := splitHash(string(h))
	return filepath.Join(s.root, dir, rest)
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write stores an object and returns its content hash. Writing content
// that is already present is a no-op returning the existing hash; the
// skip is safe because content-addressing guarantees byte-identical
// content for an identical hash.
func (s *Store) Write(objType ObjectType, body []byte) (Hash, error) {
	h := HashObject(objType, body)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	dir, _ := splitHash(string(h))
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("store write %s: mkdir: %w", h, err)
	}

	// Exclusive create. Losing the race means another writer persisted
	// the same bytes, so EEXIST is success.
	f, err := os.OpenFile(s.objectPath(h), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return h, nil
		}
		return "", fmt.Errorf("store write %s: create: %w", h, err)
	}

	zw := zlib.NewWriter(f)
	if _, err := zw.Write(envelope(objType, len(body))); err != nil {
		zw.Close()
		f.Close()
		return "", fmt.Errorf("store write %s: compress: %w", h, err)
	}
	if _, err := zw.Write(body); err != nil {
		zw.Close()
		f.Close()
		return "", fmt.Errorf("store write %s: compress: %w", h, err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("store write %s: compress flush: %w", h, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("store write %s: close: %w", h, err)
	}

	return h, nil
}

// Read retrieves an object by full hash, returning its type and body.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	f, err := os.Open(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("store read %s: %w", h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("store read %s: %w", h, err)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return "", nil, fmt.Errorf("store read %s: decompress: %w", h, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, fmt.Errorf("store read %s: decompress: %w", h, err)
	}

	objType, body, err := ParseEnvelope(raw)
	if err != nil {
		return "", nil, fmt.Errorf("store read %s: %w", h, err)
	}
	return objType, body, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, body, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeBlob)
	}
	return UnmarshalBlob(body)
}

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	body, err := MarshalTree(tr)
	if err != nil {
		return "", err
	}
	return s.Write(TypeTree, body)
}

// ReadTree reads and deserializes a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	objType, body, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeTree {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeTree)
	}
	return UnmarshalTree(body)
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	objType, body, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeCommit)
	}
	return UnmarshalCommit(body)
}
