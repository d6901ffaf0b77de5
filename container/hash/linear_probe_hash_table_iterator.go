// this code is adapted from https://github.com/brunocalza/go-bustub and
// https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package hash

import (
	pair "github.com/notEpsilon/go-pair"

	"github.com/relaydb/relaydb/storage/buffer"
	"github.com/relaydb/relaydb/storage/page"
	"github.com/relaydb/relaydb/types"
)

// latchMode selects which side of a page's reader/writer latch an
// iterator holds on the block page it is currently positioned over.
type latchMode int

const (
	latchRead latchMode = iota
	latchWrite
)

func lockPage(pg *page.Page, mode latchMode) {
	if mode == latchWrite {
		pg.Latch().WLock()
	} else {
		pg.Latch().RLock()
	}
}

func unlockPage(pg *page.Page, mode latchMode) {
	if mode == latchWrite {
		pg.Latch().WUnlock()
	} else {
		pg.Latch().RUnlock()
	}
}

// hashTableIterator walks the slot space of a linear-probing hash table
// starting from a given (bucket, offset) coordinate, wrapping around
// modulo the current block count. It holds the active block page's latch
// (per mode) for as long as it stands on that block, released and
// re-acquired on the next block as next() crosses a block boundary.
type hashTableIterator struct {
	bpm        *buffer.BufferPoolManager
	headerPage *page.HashTableHeaderPage
	coord      pair.Pair[uint64, uint64] // First = bucket index, Second = offset within bucket
	blockID    types.PageID
	blockPg    *page.Page
	blockPage  *page.HashTableBlockPage
	keyWidth   int
	valueWidth int
	mode       latchMode
}

func newHashTableIterator(bpm *buffer.BufferPoolManager, header *page.HashTableHeaderPage, bucket, offset uint64, keyWidth, valueWidth int, mode latchMode) *hashTableIterator {
	blockID := header.GetBlockPageId(int(bucket))
	blockPg := bpm.FetchPage(blockID)
	lockPage(blockPg, mode)
	blockPage := page.NewHashTableBlockPage(blockPg.Data(), keyWidth, valueWidth)

	return &hashTableIterator{
		bpm:        bpm,
		headerPage: header,
		coord:      *pair.New(bucket, offset),
		blockID:    blockID,
		blockPg:    blockPg,
		blockPage:  blockPage,
		keyWidth:   keyWidth,
		valueWidth: valueWidth,
		mode:       mode,
	}
}

func (it *hashTableIterator) bucket() uint64 { return it.coord.First }
func (it *hashTableIterator) offset() uint64 { return it.coord.Second }

// next advances the iterator by one slot, crossing into the next block
// page (unlatching and unpinning the old one) when the current block is
// exhausted.
func (it *hashTableIterator) next() {
	nextOffset := it.coord.Second + 1
	capacity := uint64(it.blockPage.Capacity())

	if nextOffset >= capacity {
		nextBucket := it.coord.First + 1
		if nextBucket >= uint64(it.headerPage.NumBlocks()) {
			nextBucket = 0
		}

		unlockPage(it.blockPg, it.mode)
		it.bpm.UnpinPage(it.blockID, false)

		it.blockID = it.headerPage.GetBlockPageId(int(nextBucket))
		it.blockPg = it.bpm.FetchPage(it.blockID)
		lockPage(it.blockPg, it.mode)
		it.blockPage = page.NewHashTableBlockPage(it.blockPg.Data(), it.keyWidth, it.valueWidth)
		it.coord = *pair.New(nextBucket, uint64(0))
		return
	}

	it.coord = *pair.New(it.coord.First, nextOffset)
}

// release unlatches the block page currently under the iterator. Callers
// must invoke this before the corresponding UnpinPage.
func (it *hashTableIterator) release() {
	unlockPage(it.blockPg, it.mode)
}
