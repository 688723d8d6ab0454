package object

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// rawHashLen is the width of a binary digest inside a tree entry.
const rawHashLen = 20

// HexHashLen is the width of a fully spelled-out hex hash.
const HexHashLen = 2 * rawHashLen

// Tree entry modes, written in the decimal form git uses on the wire.
const (
	ModeDir        uint32 = 40000
	ModeFile       uint32 = 100644
	ModeExecutable uint32 = 100755
	ModeSymlink    uint32 = 120000
	ModeSubmodule  uint32 = 160000
)

// Blob holds a stored file's content. Content is restricted to valid
// UTF-8 text; arbitrary binary data is rejected when decoded and when
// snapshotting a working directory.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	Name string
	Mode uint32
	Hash Hash
}

// KindWord returns the object-kind word shown for this entry in listings:
// "tree" for directories, "commit" for submodule entries, "blob" otherwise.
func (e TreeEntry) KindWord() string {
	switch e.Mode {
	case ModeDir:
		return "tree"
	case ModeSubmodule:
		return "commit"
	default:
		return "blob"
	}
}

// TreeObj holds a list of tree entries. Serialization sorts them by Name.
type TreeObj struct {
	Entries []TreeEntry
}

// CommitObj represents a commit pointing to a tree with metadata.
// Parent is empty for a root commit. Timestamp is seconds since the
// epoch; Timezone is a fixed offset in the form "+HHMM" or "-HHMM",
// shared by the author and committer lines.
type CommitObj struct {
	TreeHash       Hash
	Parent         Hash
	AuthorName     string
	AuthorEmail    string
	CommitterName  string
	CommitterEmail string
	Timestamp      int64
	Timezone       string
	Message        string
}
