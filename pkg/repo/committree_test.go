package repo

import (
	"strings"
	"testing"
	"time"

	"github.com/gritvcs/grit/pkg/object"
)

func TestCommitTreeRootCommit(t *testing.T) {
	r := tempRepo(t)
	tree := object.Hash(strings.Repeat("ab", 20))
	when := time.Unix(1700000000, 0).In(time.FixedZone("", 0))

	h, err := r.CommitTree(tree, "", "init", Identity{"Jane Doe", "jane@x.com"}, Identity{"Jane Doe", "jane@x.com"}, when)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}

	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if c.TreeHash != tree {
		t.Errorf("TreeHash: got %s, want %s", c.TreeHash, tree)
	}
	if c.Parent != "" {
		t.Errorf("Parent: got %q, want empty", c.Parent)
	}
	if c.AuthorName != "Jane Doe" || c.AuthorEmail != "jane@x.com" {
		t.Errorf("author: got %q %q", c.AuthorName, c.AuthorEmail)
	}
	if c.Timestamp != 1700000000 {
		t.Errorf("Timestamp: got %d", c.Timestamp)
	}
	if c.Timezone != "+0000" {
		t.Errorf("Timezone: got %q, want +0000", c.Timezone)
	}
	if c.Message != "init" {
		t.Errorf("Message: got %q", c.Message)
	}
}

func TestCommitTreeWithParent(t *testing.T) {
	r := tempRepo(t)
	tree := object.Hash(strings.Repeat("ab", 20))
	parent := object.Hash(strings.Repeat("cd", 20))
	who := Identity{"A", "a@x.com"}

	h, err := r.CommitTree(tree, parent, "second", who, who, time.Unix(1, 0).UTC())
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if c.Parent != parent {
		t.Errorf("Parent: got %s, want %s", c.Parent, parent)
	}
}

func TestCommitTreeFixedOffsetZone(t *testing.T) {
	r := tempRepo(t)
	who := Identity{"A", "a@x.com"}
	when := time.Unix(1700000000, 0).In(time.FixedZone("", -5*3600))

	h, err := r.CommitTree(object.Hash(strings.Repeat("ab", 20)), "", "zoned", who, who, when)
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if c.Timezone != "-0500" {
		t.Errorf("Timezone: got %q, want -0500", c.Timezone)
	}
}

func TestCommitTreeDoesNotValidateReferences(t *testing.T) {
	// Referencing objects that were never stored is a caller error,
	// not a store error.
	r := tempRepo(t)
	who := Identity{"A", "a@x.com"}
	_, err := r.CommitTree(object.Hash(strings.Repeat("ee", 20)), object.Hash(strings.Repeat("ff", 20)), "dangling", who, who, time.Unix(1, 0).UTC())
	if err != nil {
		t.Errorf("CommitTree with dangling references: %v", err)
	}
}
