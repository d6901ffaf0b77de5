// this code is adapted from https://github.com/brunocalza/go-bustub and
// https://github.com/ryogrid/SamehadaDB, with Resize supplemented from
// original_source/src/container/hash/linear_probe_hash_table.cpp
// there is license and copyright notice in licenses/go-bustub dir

package hash

import (
	"unsafe"

	"github.com/relaydb/relaydb/common"
	"github.com/relaydb/relaydb/storage/buffer"
	"github.com/relaydb/relaydb/storage/page"
	"github.com/relaydb/relaydb/types"
)

// LinearProbeHashTable is a persistent, disk-backed multi-map: a key may
// have several associated values. State lives entirely in pages obtained
// from the buffer pool. Unlike the teacher's int-keyed table, keys and
// values here are fixed-width byte slices, matching section 6's "typed
// over (Key, Value): fixed-width keys ... and fixed-width values" API.
type LinearProbeHashTable struct {
	headerPageID types.PageID
	bpm          *buffer.BufferPoolManager
	tableLatch   common.ReaderWriterLatch
	hasher       Hasher
	comparator   Comparator
	keyWidth     int
	valueWidth   int
}

// NewLinearProbeHashTable constructs a table with numBuckets initial block
// pages, using hasher/comparator (defaulting to MurmurHasher/
// ByteComparator when nil) over fixed keyWidth/valueWidth byte keys and
// values.
func NewLinearProbeHashTable(bpm *buffer.BufferPoolManager, numBuckets int, keyWidth, valueWidth int, hasher Hasher, comparator Comparator) *LinearProbeHashTable {
	if hasher == nil {
		hasher = MurmurHasher{}
	}
	if comparator == nil {
		comparator = ByteComparator{}
	}

	header := bpm.NewPage()
	headerPage := castHeaderPage(header.Data())
	headerPage.SetPageId(header.ID())
	headerPage.SetSize(numBuckets)

	for i := 0; i < numBuckets; i++ {
		np := bpm.NewPage()
		headerPage.AddBlockPageId(np.ID())
		bpm.UnpinPage(np.ID(), true)
	}
	bpm.UnpinPage(header.ID(), true)

	return &LinearProbeHashTable{
		headerPageID: header.ID(),
		bpm:          bpm,
		tableLatch:   common.NewRWLatch(),
		hasher:       hasher,
		comparator:   comparator,
		keyWidth:     keyWidth,
		valueWidth:   valueWidth,
	}
}

// NewLinearProbeHashTableFromConfig builds a table with cfg.BucketCount
// initial block pages, using the default MurmurHasher/ByteComparator pair.
func NewLinearProbeHashTableFromConfig(cfg common.Config, bpm *buffer.BufferPoolManager, keyWidth, valueWidth int) *LinearProbeHashTable {
	return NewLinearProbeHashTable(bpm, cfg.BucketCount, keyWidth, valueWidth, nil, nil)
}

func castHeaderPage(data *[page.PageSize]byte) *page.HashTableHeaderPage {
	return (*page.HashTableHeaderPage)(unsafe.Pointer(data))
}

func (ht *LinearProbeHashTable) blockCapacity() int {
	return page.SlotCapacity(ht.keyWidth, ht.valueWidth)
}

func (ht *LinearProbeHashTable) hashVal(key []byte, numBlocks int) uint64 {
	capacity := uint64(numBlocks * ht.blockCapacity())
	return ht.hasher.Hash(key) % capacity
}

// GetValue returns every value associated with key. Latch order follows
// section 5: table latch (taken here in read mode) -> header-page latch ->
// block-page latch, each released before its page is unpinned.
func (ht *LinearProbeHashTable) GetValue(key []byte) [][]byte {
	ht.tableLatch.RLock()
	defer ht.tableLatch.RUnlock()

	headerPg := ht.bpm.FetchPage(ht.headerPageID)
	headerPg.Latch().RLock()
	headerPage := castHeaderPage(headerPg.Data())
	capacity := ht.blockCapacity()
	hashVal := ht.hashVal(key, headerPage.NumBlocks())
	originalBucket := hashVal / uint64(capacity)
	originalOffset := hashVal % uint64(capacity)

	it := newHashTableIterator(ht.bpm, headerPage, originalBucket, originalOffset, ht.keyWidth, ht.valueWidth, latchRead)

	result := [][]byte{}
	for it.blockPage.IsOccupied(int(it.offset())) {
		if it.blockPage.IsReadable(int(it.offset())) && ht.comparator.Compare(it.blockPage.KeyAt(int(it.offset())), key) == 0 {
			v := make([]byte, ht.valueWidth)
			copy(v, it.blockPage.ValueAt(int(it.offset())))
			result = append(result, v)
		}

		it.next()
		if it.bucket() == originalBucket && it.offset() == originalOffset {
			break
		}
	}

	it.release()
	ht.bpm.UnpinPage(it.blockID, false)
	headerPg.Latch().RUnlock()
	ht.bpm.UnpinPage(ht.headerPageID, false)

	return result
}

// Insert delegates to internalInsert under a read latch, retrying through
// a Resize when the table reports itself full, per section 4.3's
// full-then-resize protocol.
func (ht *LinearProbeHashTable) Insert(key, value []byte) bool {
	ht.tableLatch.RLock()
	for {
		full := false
		ok := ht.internalInsert(key, value, &full)
		if ok {
			ht.tableLatch.RUnlock()
			return true
		}
		ht.tableLatch.RUnlock()
		if !full {
			return false
		}
		ht.Resize(ht.GetSize())
		ht.tableLatch.RLock()
	}
}

// internalInsert probes for the first non-occupied slot and installs
// (key, value) there, reporting duplicate suppression via its bool
// return and index-full via *full. Caller must hold at least a read
// table latch. The header page is only ever read here, so it takes a
// read latch; the active block page takes a write latch for the
// duration of the probe, since it is a candidate for mutation on every
// step (section 5, section 8's concurrent-insert race on the occupied
// bitmap).
func (ht *LinearProbeHashTable) internalInsert(key, value []byte, full *bool) bool {
	headerPg := ht.bpm.FetchPage(ht.headerPageID)
	headerPg.Latch().RLock()
	headerPage := castHeaderPage(headerPg.Data())
	capacity := ht.blockCapacity()
	hashVal := ht.hashVal(key, headerPage.NumBlocks())
	originalBucket := hashVal / uint64(capacity)
	originalOffset := hashVal % uint64(capacity)

	it := newHashTableIterator(ht.bpm, headerPage, originalBucket, originalOffset, ht.keyWidth, ht.valueWidth, latchWrite)

	for {
		offset := int(it.offset())
		if it.blockPage.IsOccupied(offset) && it.blockPage.IsReadable(offset) &&
			ht.comparator.Compare(it.blockPage.KeyAt(offset), key) == 0 &&
			ht.comparator.Compare(it.blockPage.ValueAt(offset), value) == 0 {
			it.release()
			ht.bpm.UnpinPage(it.blockID, false)
			headerPg.Latch().RUnlock()
			ht.bpm.UnpinPage(ht.headerPageID, false)
			return false
		}

		if it.blockPage.Insert(offset, key, value) {
			it.release()
			ht.bpm.UnpinPage(it.blockID, true)
			headerPg.Latch().RUnlock()
			ht.bpm.UnpinPage(ht.headerPageID, false)
			return true
		}

		it.next()
		if it.bucket() == originalBucket && it.offset() == originalOffset {
			it.release()
			ht.bpm.UnpinPage(it.blockID, false)
			headerPg.Latch().RUnlock()
			ht.bpm.UnpinPage(ht.headerPageID, false)
			if full != nil {
				*full = true
			}
			return false
		}
	}
}

// Remove clears the readable bit of the slot matching (key, value),
// leaving a tombstone that preserves the probe chain. Per section 4.3,
// this runs under a read table latch and a write latch on the active
// block page.
func (ht *LinearProbeHashTable) Remove(key, value []byte) bool {
	ht.tableLatch.RLock()
	defer ht.tableLatch.RUnlock()

	headerPg := ht.bpm.FetchPage(ht.headerPageID)
	headerPg.Latch().RLock()
	headerPage := castHeaderPage(headerPg.Data())
	capacity := ht.blockCapacity()
	hashVal := ht.hashVal(key, headerPage.NumBlocks())
	originalBucket := hashVal / uint64(capacity)
	originalOffset := hashVal % uint64(capacity)

	it := newHashTableIterator(ht.bpm, headerPage, originalBucket, originalOffset, ht.keyWidth, ht.valueWidth, latchWrite)

	for it.blockPage.IsOccupied(int(it.offset())) {
		offset := int(it.offset())
		if ht.comparator.Compare(it.blockPage.KeyAt(offset), key) == 0 &&
			ht.comparator.Compare(it.blockPage.ValueAt(offset), value) == 0 {
			if !it.blockPage.IsReadable(offset) {
				it.release()
				ht.bpm.UnpinPage(it.blockID, false)
				headerPg.Latch().RUnlock()
				ht.bpm.UnpinPage(ht.headerPageID, false)
				return false
			}
			it.blockPage.Remove(offset)
			it.release()
			ht.bpm.UnpinPage(it.blockID, true)
			headerPg.Latch().RUnlock()
			ht.bpm.UnpinPage(ht.headerPageID, false)
			return true
		}

		it.next()
		if it.bucket() == originalBucket && it.offset() == originalOffset {
			break
		}
	}

	it.release()
	ht.bpm.UnpinPage(it.blockID, false)
	headerPg.Latch().RUnlock()
	ht.bpm.UnpinPage(ht.headerPageID, false)
	return false
}

// Resize grows the table to at least 2*initialSize logical slots,
// re-inserting every readable pair from the old blocks and retiring the
// old header and block pages. Ground truth: original_source's
// linear_probe_hash_table.cpp Resize — the teacher's Go port never
// finished this method.
func (ht *LinearProbeHashTable) Resize(initialSize int) {
	ht.tableLatch.WLock()
	defer ht.tableLatch.WUnlock()

	capacity := ht.blockCapacity()
	oldHeaderID := ht.headerPageID
	oldHeaderPg := ht.bpm.FetchPage(oldHeaderID)
	oldHeaderPg.Latch().WLock()
	oldHeaderPage := castHeaderPage(oldHeaderPg.Data())

	newHeader := ht.bpm.NewPage()
	newHeaderPage := castHeaderPage(newHeader.Data())
	newBuckets := (2*initialSize + capacity - 1) / capacity
	newHeaderPage.SetSize(newBuckets)
	newHeaderPage.SetPageId(newHeader.ID())

	if common.EnableDebug {
		common.ShPrintf(common.DebugInfo, "Resize: oldHeader=%d newHeader=%d newBuckets=%d\n", oldHeaderID, newHeader.ID(), newBuckets)
	}

	for i := 0; i < newBuckets; i++ {
		np := ht.bpm.NewPage()
		newHeaderPage.AddBlockPageId(np.ID())
		ht.bpm.UnpinPage(np.ID(), true)
	}

	oldBlockIDs := make([]types.PageID, oldHeaderPage.NumBlocks())
	for i := 0; i < oldHeaderPage.NumBlocks(); i++ {
		oldBlockIDs[i] = oldHeaderPage.GetBlockPageId(i)
	}

	ht.headerPageID = newHeader.ID()

	for _, blockID := range oldBlockIDs {
		blockPg := ht.bpm.FetchPage(blockID)
		blockPg.Latch().WLock()
		blockPage := page.NewHashTableBlockPage(blockPg.Data(), ht.keyWidth, ht.valueWidth)
		for offset := 0; offset < blockPage.Capacity(); offset++ {
			if blockPage.IsReadable(offset) {
				key := make([]byte, ht.keyWidth)
				value := make([]byte, ht.valueWidth)
				copy(key, blockPage.KeyAt(offset))
				copy(value, blockPage.ValueAt(offset))
				ht.internalInsert(key, value, nil)
			}
		}
		blockPg.Latch().WUnlock()
		ht.bpm.UnpinPage(blockID, false)
		ht.bpm.DeletePage(blockID)
	}

	oldHeaderPg.Latch().WUnlock()
	ht.bpm.UnpinPage(oldHeaderID, false)
	ht.bpm.DeletePage(oldHeaderID)
	ht.bpm.UnpinPage(ht.headerPageID, false)
}

// GetSize returns the table's logical capacity: num_blocks *
// block_array_size, not occupancy.
func (ht *LinearProbeHashTable) GetSize() int {
	ht.tableLatch.RLock()
	defer ht.tableLatch.RUnlock()

	headerPg := ht.bpm.FetchPage(ht.headerPageID)
	headerPg.Latch().RLock()
	numBlocks := castHeaderPage(headerPg.Data()).NumBlocks()
	headerPg.Latch().RUnlock()
	ht.bpm.UnpinPage(ht.headerPageID, false)
	return numBlocks * ht.blockCapacity()
}
