// this code is adapted from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"encoding/binary"

	"github.com/relaydb/relaydb/types"
)

// RIDSize is the fixed on-disk width of a packed RID, used as the value
// width for hash tables whose values are record identifiers.
const RIDSize = 8

// RID is the record identifier for a given page and slot number: the
// value type most linear-probing hash indexes over this buffer pool
// store, per section 6's "typically a record-identifier pair" note.
type RID struct {
	pageID  types.PageID
	slotNum uint32
}

// NewRID constructs a RID.
func NewRID(pageID types.PageID, slotNum uint32) RID {
	return RID{pageID: pageID, slotNum: slotNum}
}

// Set sets the record identifier.
func (r *RID) Set(pageID types.PageID, slot uint32) {
	r.pageID = pageID
	r.slotNum = slot
}

// GetPageId gets the page id.
func (r *RID) GetPageId() types.PageID {
	return r.pageID
}

// GetSlot gets the slot number.
func (r *RID) GetSlot() uint32 {
	return r.slotNum
}

// Pack renders the RID as its fixed 8-byte little-endian representation,
// suitable as a hash table value.
func (r RID) Pack() []byte {
	buf := make([]byte, RIDSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(r.pageID))
	binary.LittleEndian.PutUint32(buf[4:8], r.slotNum)
	return buf
}

// UnpackRID parses the representation written by Pack.
func UnpackRID(data []byte) RID {
	return RID{
		pageID:  types.PageID(binary.LittleEndian.Uint32(data[0:4])),
		slotNum: binary.LittleEndian.Uint32(data[4:8]),
	}
}
