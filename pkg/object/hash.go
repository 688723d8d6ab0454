package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// envelope returns the storage header "<type> <len>\x00" for a body of
// the given length. The same bytes prefix the body both for hashing and
// on disk.
func envelope(objType ObjectType, bodyLen int) []byte {
	return []byte(fmt.Sprintf("%s %d\x00", objType, bodyLen))
}

// HashObject computes the SHA-1 of the envelope "type len\0body",
// mirroring git's object hashing.
func HashObject(objType ObjectType, body []byte) Hash {
	h := sha1.New()
	h.Write(envelope(objType, len(body)))
	h.Write(body)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}
