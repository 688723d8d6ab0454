package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gritvcs/grit/pkg/object"
)

func writeSnapshotFile(t *testing.T, path string, content []byte, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, content, perm); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestSnapshotEmptyDirMatchesGit(t *testing.T) {
	r := tempRepo(t)
	h, err := r.Snapshot(r.RootDir)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	// Only .git exists, which is ignored, so this is git's empty tree.
	if h != "4b825dc642cb6eb9a060e54bf8d69288fbee4904" {
		t.Errorf("empty snapshot: got %s", h)
	}
}

func TestSnapshotOrdersEntries(t *testing.T) {
	r := tempRepo(t)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "b.txt"), []byte("bee\n"), 0o644)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "a.txt"), []byte("ay\n"), 0o644)

	h, err := r.Snapshot(r.RootDir)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tr.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(tr.Entries))
	}
	if tr.Entries[0].Name != "a.txt" || tr.Entries[1].Name != "b.txt" {
		t.Errorf("entries out of order: %+v", tr.Entries)
	}
}

func TestSnapshotDeterminism(t *testing.T) {
	build := func() object.Hash {
		r := tempRepo(t)
		writeSnapshotFile(t, filepath.Join(r.RootDir, "x.txt"), []byte("same\n"), 0o644)
		writeSnapshotFile(t, filepath.Join(r.RootDir, "sub", "y.txt"), []byte("also same\n"), 0o644)
		h, err := r.Snapshot(r.RootDir)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		return h
	}
	if build() != build() {
		t.Error("identical directory contents produced different tree hashes")
	}
}

func TestSnapshotNestedDirectories(t *testing.T) {
	r := tempRepo(t)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "sub", "inner.txt"), []byte("deep\n"), 0o644)

	h, err := r.Snapshot(r.RootDir)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tr.Entries) != 1 || tr.Entries[0].Name != "sub" {
		t.Fatalf("root entries: %+v", tr.Entries)
	}
	if tr.Entries[0].Mode != object.ModeDir {
		t.Errorf("sub mode: got %d, want %d", tr.Entries[0].Mode, object.ModeDir)
	}

	sub, err := r.Store.ReadTree(tr.Entries[0].Hash)
	if err != nil {
		t.Fatalf("ReadTree(sub): %v", err)
	}
	if len(sub.Entries) != 1 || sub.Entries[0].Name != "inner.txt" {
		t.Fatalf("sub entries: %+v", sub.Entries)
	}
	blob, err := r.Store.ReadBlob(sub.Entries[0].Hash)
	if err != nil {
		t.Fatalf("ReadBlob: %v", err)
	}
	if string(blob.Data) != "deep\n" {
		t.Errorf("blob content: got %q", blob.Data)
	}
}

func TestSnapshotIgnoresMetadataAndTarget(t *testing.T) {
	r := tempRepo(t)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "keep.txt"), []byte("keep\n"), 0o644)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "target", "artifact.txt"), []byte("built\n"), 0o644)

	h, err := r.Snapshot(r.RootDir)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tr.Entries) != 1 || tr.Entries[0].Name != "keep.txt" {
		t.Errorf("entries: %+v (want only keep.txt)", tr.Entries)
	}
}

func TestSnapshotExecutableMode(t *testing.T) {
	r := tempRepo(t)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "run.sh"), []byte("#!/bin/sh\n"), 0o755)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "data.txt"), []byte("plain\n"), 0o644)

	h, err := r.Snapshot(r.RootDir)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	modes := map[string]uint32{}
	for _, e := range tr.Entries {
		modes[e.Name] = e.Mode
	}
	if modes["run.sh"] != object.ModeExecutable {
		t.Errorf("run.sh mode: got %d, want %d", modes["run.sh"], object.ModeExecutable)
	}
	if modes["data.txt"] != object.ModeFile {
		t.Errorf("data.txt mode: got %d, want %d", modes["data.txt"], object.ModeFile)
	}
}

func TestSnapshotRejectsBinaryFile(t *testing.T) {
	r := tempRepo(t)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "blob.bin"), []byte{0xff, 0x00, 0x80, 0xfe}, 0o644)

	_, err := r.Snapshot(r.RootDir)
	if !errors.Is(err, object.ErrInvalidEncoding) {
		t.Errorf("got %v, want ErrInvalidEncoding", err)
	}
}

func TestSnapshotSkipsSymlinks(t *testing.T) {
	r := tempRepo(t)
	writeSnapshotFile(t, filepath.Join(r.RootDir, "real.txt"), []byte("real\n"), 0o644)
	if err := os.Symlink("real.txt", filepath.Join(r.RootDir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	h, err := r.Snapshot(r.RootDir)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	tr, err := r.Store.ReadTree(h)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tr.Entries) != 1 || tr.Entries[0].Name != "real.txt" {
		t.Errorf("entries: %+v (want only real.txt)", tr.Entries)
	}
}
