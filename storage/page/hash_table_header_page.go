// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package page

import "github.com/relaydb/relaydb/types"

// HashTableHeaderPage is an unsafe-cast view over a frame's byte buffer.
// Its layout does not depend on the table's key/value width, unlike
// HashTableBlockPage, so the literal-struct overlay this type used
// before generalization is kept as-is.
//
// Header format (size in bytes, 16 bytes fixed plus the block id array):
// -------------------------------------------------------------
// | PageId(4) | LSN (4) | NextBlockIndex(4) | Size (4) | blockPageIds...
// -------------------------------------------------------------
type HashTableHeaderPage struct {
	pageID       types.PageID
	lsn          int32 // log sequence number
	nextIndex    int32 // the next index to add a new entry to blockPageIds
	size         int32 // the declared number of block pages
	blockPageIds [1020]types.PageID
}

func (p *HashTableHeaderPage) GetBlockPageId(index int) types.PageID {
	return p.blockPageIds[index]
}

func (p *HashTableHeaderPage) GetPageId() types.PageID {
	return p.pageID
}

func (p *HashTableHeaderPage) SetPageId(pageID types.PageID) {
	p.pageID = pageID
}

func (p *HashTableHeaderPage) GetLSN() int {
	return int(p.lsn)
}

func (p *HashTableHeaderPage) SetLSN(lsn int) {
	p.lsn = int32(lsn)
}

// AddBlockPageId appends a block page id, the ordered-list append
// operation section 4.3 calls out for the header page.
func (p *HashTableHeaderPage) AddBlockPageId(pageID types.PageID) {
	p.blockPageIds[p.nextIndex] = pageID
	p.nextIndex++
}

// NumBlocks returns the current appended-prefix length.
func (p *HashTableHeaderPage) NumBlocks() int {
	return int(p.nextIndex)
}

func (p *HashTableHeaderPage) SetSize(size int) {
	p.size = int32(size)
}

func (p *HashTableHeaderPage) GetSize() int {
	return int(p.size)
}
