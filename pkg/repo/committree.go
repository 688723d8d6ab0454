package repo

import (
	"fmt"
	"time"

	"github.com/gritvcs/grit/pkg/object"
)

// Identity names an author or committer.
type Identity struct {
	Name  string
	Email string
}

// CommitTree assembles a commit object referencing tree, with an
// optional parent (empty Hash for a root commit), and writes it to the
// store. Neither tree nor parent is checked for existence; callers own
// that invariant.
func (r *Repo) CommitTree(tree, parent object.Hash, message string, author, committer Identity, when time.Time) (object.Hash, error) {
	c := &object.CommitObj{
		TreeHash:       tree,
		Parent:         parent,
		AuthorName:     author.Name,
		AuthorEmail:    author.Email,
		CommitterName:  committer.Name,
		CommitterEmail: committer.Email,
		Timestamp:      when.Unix(),
		Timezone:       when.Format("-0700"),
		Message:        message,
	}
	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit-tree: %w", err)
	}
	return h, nil
}
