package common

import (
	"encoding/binary"
	"fmt"
)

// FileID is the identity of an open page file. Two handles with the same
// FileID refer to the same file.
type FileID uint64

// PageID is the number of a page within its file.
type PageID uint64

// FrameID indexes the frame table and the frame pool of a buffer manager.
type FrameID uint64

const NilFileID = FileID(0)

const SerializedPageIdentitySize = 16

type PageIdentity struct {
	FileID FileID
	PageID PageID
}

func (p PageIdentity) String() string {
	return fmt.Sprintf("(file=%d, page=%d)", p.FileID, p.PageID)
}

// MarshalBinary encodes the identity as two big-endian words, file first.
func (p PageIdentity) MarshalBinary() ([]byte, error) {
	b := make([]byte, SerializedPageIdentitySize)
	binary.BigEndian.PutUint64(b[:8], uint64(p.FileID))
	binary.BigEndian.PutUint64(b[8:], uint64(p.PageID))

	return b, nil
}
