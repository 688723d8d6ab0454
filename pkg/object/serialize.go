package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Envelope
// ---------------------------------------------------------------------------

// ParseEnvelope splits decompressed object bytes into their type and body.
// The wire format is "<type> <decimal-length>\x00<body>". Bytes beyond the
// declared length are ignored, matching a length-bounded read.
func ParseEnvelope(raw []byte) (ObjectType, []byte, error) {
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("%w: no NUL delimiter", ErrMalformedHeader)
	}
	header := string(raw[:nulIdx])

	kind, lenStr, ok := strings.Cut(header, " ")
	if !ok || kind == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrMalformedHeader, header)
	}
	length, err := strconv.Atoi(lenStr)
	if err != nil || length < 0 {
		return "", nil, fmt.Errorf("%w: bad length %q", ErrMalformedHeader, lenStr)
	}

	switch ObjectType(kind) {
	case TypeBlob, TypeTree, TypeCommit:
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedObjectKind, kind)
	}

	body := raw[nulIdx+1:]
	if len(body) < length {
		return "", nil, fmt.Errorf("%w: header declares %d bytes, have %d",
			ErrTruncatedBody, length, len(body))
	}
	return ObjectType(kind), body[:length], nil
}

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob. Content must be
// valid UTF-8 text.
func UnmarshalBlob(data []byte) (*Blob, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("unmarshal blob: %w", ErrInvalidEncoding)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeObj. Entries are sorted by Name (byte-wise
// ascending) for deterministic output. Each entry is
//
//	<decimal mode> <name>\x00<20 raw digest bytes>
//
// concatenated with no trailing delimiter.
func MarshalTree(tr *TreeObj) ([]byte, error) {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		fmt.Fprintf(&buf, "%d %s\x00", e.Mode, e.Name)
		raw, err := hex.DecodeString(string(e.Hash))
		if err != nil || len(raw) != rawHashLen {
			return nil, fmt.Errorf("marshal tree: entry %q: invalid hash %q", e.Name, e.Hash)
		}
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a TreeObj from its serialized form. Entry hashes
// are rendered back to lowercase hex.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	pos := 0
	for pos < len(data) {
		nulIdx := bytes.IndexByte(data[pos:], 0)
		if nulIdx < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: no NUL after offset %d", ErrTruncatedEntry, pos)
		}
		meta := string(data[pos : pos+nulIdx])

		modeStr, name, ok := strings.Cut(meta, " ")
		if !ok || name == "" {
			return nil, fmt.Errorf("unmarshal tree: %w: entry %q", ErrMalformedHeader, meta)
		}
		mode, err := strconv.ParseUint(modeStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w: bad mode %q", ErrMalformedHeader, modeStr)
		}

		hashStart := pos + nulIdx + 1
		if len(data)-hashStart < rawHashLen {
			return nil, fmt.Errorf("unmarshal tree: %w: entry %q", ErrTruncatedEntry, name)
		}
		tr.Entries = append(tr.Entries, TreeEntry{
			Name: name,
			Mode: uint32(mode),
			Hash: Hash(hex.EncodeToString(data[hashStart : hashStart+rawHashLen])),
		})
		pos = hashStart + rawHashLen
	}
	return tr, nil
}

// RenderTree returns the human-readable listing of a tree, one entry per
// line: "<6-digit mode> <kind> <hash>\t<name>".
func RenderTree(tr *TreeObj) string {
	var buf strings.Builder
	for _, e := range tr.Entries {
		fmt.Fprintf(&buf, "%06d %s %s\t%s\n", e.Mode, e.KindWord(), e.Hash, e.Name)
	}
	return buf.String()
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	tree H
//	parent H        (omitted when empty)
//	author N E T Z
//	committer N E T Z
//
//	message
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	if c.Parent != "" {
		fmt.Fprintf(&buf, "parent %s\n", string(c.Parent))
	}
	fmt.Fprintf(&buf, "author %s %s %d %s\n", c.AuthorName, c.AuthorEmail, c.Timestamp, c.Timezone)
	fmt.Fprintf(&buf, "committer %s %s %d %s\n", c.CommitterName, c.CommitterEmail, c.Timestamp, c.Timezone)
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// commitField finds "<key> <value>" among header lines by exact
// prefix-and-space match, returning the value and whether it was found.
func commitField(lines []string, key string) (string, bool) {
	for _, line := range lines {
		if strings.HasPrefix(line, key) && len(line) > len(key) && line[len(key)] == ' ' {
			return line[len(key)+1:], true
		}
	}
	return "", false
}

// splitIdentLine tokenizes an author/committer line by spaces. The last
// two tokens are the unix timestamp and fixed zone offset, the token
// before them is the email, and everything earlier rejoins as the name.
// This positional split misparses names whose trailing tokens look like
// an email or timestamp; see the package tests for the pinned behavior.
func splitIdentLine(line string) (name, email string, ts int64, zone string, err error) {
	parts := strings.Split(line, " ")
	if len(parts) < 3 {
		return "", "", 0, "", fmt.Errorf("malformed ident line %q", line)
	}
	n := len(parts)
	name = strings.Join(parts[:n-3], " ")
	email = parts[n-3]
	ts, err = strconv.ParseInt(parts[n-2], 10, 64)
	if err != nil {
		return "", "", 0, "", fmt.Errorf("bad timestamp in ident line %q: %w", line, err)
	}
	zone = parts[n-1]
	if len(zone) != 5 || (zone[0] != '+' && zone[0] != '-') {
		return "", "", 0, "", fmt.Errorf("bad timezone %q in ident line %q", zone, line)
	}
	return name, email, ts, zone, nil
}

// UnmarshalCommit parses a CommitObj from its serialized form. The
// message is the non-empty lines after the first blank line, rejoined
// with newlines.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("unmarshal commit: %w", ErrInvalidEncoding)
	}
	lines := strings.Split(string(data), "\n")

	sep := -1
	for i, line := range lines {
		if line == "" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, fmt.Errorf("unmarshal commit: %w", ErrMissingSeparator)
	}
	header := lines[:sep]

	var msgLines []string
	for _, line := range lines[sep+1:] {
		if line != "" {
			msgLines = append(msgLines, line)
		}
	}

	tree, ok := commitField(header, "tree")
	if !ok {
		return nil, fmt.Errorf("unmarshal commit: missing tree line")
	}
	parent, _ := commitField(header, "parent")

	authorLine, ok := commitField(header, "author")
	if !ok {
		return nil, fmt.Errorf("unmarshal commit: missing author line")
	}
	committerLine, ok := commitField(header, "committer")
	if !ok {
		return nil, fmt.Errorf("unmarshal commit: missing committer line")
	}

	authorName, authorEmail, ts, zone, err := splitIdentLine(authorLine)
	if err != nil {
		return nil, fmt.Errorf("unmarshal commit: author: %w", err)
	}
	committerName, committerEmail, _, _, err := splitIdentLine(committerLine)
	if err != nil {
		return nil, fmt.Errorf("unmarshal commit: committer: %w", err)
	}

	return &CommitObj{
		TreeHash:       Hash(tree),
		Parent:         Hash(parent),
		AuthorName:     authorName,
		AuthorEmail:    authorEmail,
		CommitterName:  committerName,
		CommitterEmail: committerEmail,
		Timestamp:      ts,
		Timezone:       zone,
		Message:        strings.Join(msgLines, "\n"),
	}, nil
}

// RenderCommit returns the human-readable rendering of a commit: the
// encoded header block, a blank line, and the message.
func RenderCommit(c *CommitObj) string {
	return string(MarshalCommit(c))
}
