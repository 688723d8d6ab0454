package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gritvcs/grit/pkg/object"
)

// Repo represents an opened grit repository.
type Repo struct {
	RootDir string        // working directory root
	GitDir  string        // .git/ directory
	Store   *object.Store // content-addressed object store
}

// gitDirName is the repository metadata directory. The on-disk object
// layout under it is wire-compatible with git's loose-object store.
const gitDirName = ".git"

// Open locates a repository at path or any of its ancestors and returns
// a Repo handle.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	dir := abs
	for {
		gitDir := filepath.Join(dir, gitDirName)
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return &Repo{
				RootDir: dir,
				GitDir:  gitDir,
				Store:   object.NewStore(filepath.Join(gitDir, "objects")),
			}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("open repo: no %s directory found from %s upward", gitDirName, abs)
		}
		dir = parent
	}
}

// Init creates a new repository at path: the metadata directory and an
// empty objects/ store. Returns an error if one already exists.
func Init(path string) (*Repo, error) {
	gitDir := filepath.Join(path, gitDirName)

	if _, err := os.Stat(gitDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", gitDir)
	}

	objectsDir := filepath.Join(gitDir, "objects")
	if err := os.MkdirAll(objectsDir, 0o755); err != nil {
		return nil, fmt.Errorf("init: mkdir %s: %w", objectsDir, err)
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return &Repo{
		RootDir: root,
		GitDir:  filepath.Join(root, gitDirName),
		Store:   object.NewStore(objectsDir),
	}, nil
}
