// this code is adapted from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"bytes"
	"encoding/binary"
)

// PageID identifies a page as allocated by the Disk collaborator. It carries
// no information about where the page currently lives, if anywhere, in the
// buffer pool.
type PageID int32

// InvalidPageID is the sentinel PageID that identifies no page; IsValid
// reports false for it.
const InvalidPageID = PageID(-1)

// IsValid reports whether id could plausibly identify an allocated page.
func (id PageID) IsValid() bool {
	return id != InvalidPageID && id >= 0
}

// Serialize renders the id as its little-endian on-disk representation.
func (id PageID) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, id)
	return buf.Bytes()
}

// NewPageIDFromBytes parses the on-disk representation written by Serialize.
func NewPageIDFromBytes(data []byte) (ret PageID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}
