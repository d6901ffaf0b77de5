// this code is adapted from https://github.com/ryogrid/SamehadaDB and
// original_source/src/buffer/buffer_pool_manager.cpp
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"fmt"

	"github.com/golang-collections/collections/queue"

	"github.com/relaydb/relaydb/common"
	"github.com/relaydb/relaydb/storage/disk"
	"github.com/relaydb/relaydb/storage/page"
	"github.com/relaydb/relaydb/types"
)

// BufferPoolManager caches up to poolSize pages in memory with write-back,
// reference counting, and clock-based victim selection.
//
// Open question resolutions (spec.md section 9), applied here rather than
// mirrored:
//   - DeletePage pushes the freed frame back onto the free list.
//   - Every call into the replacer passes a FrameID, never a PageID.
//   - REDESIGN FLAG applied: FetchPage releases the pool latch around the
//     disk read, marking the requested page id "loading" in loading so a
//     second fetcher of the same in-flight page blocks on a channel instead
//     of issuing a second read; NewPage releases it around AllocatePage.
//     The eviction victim's dirty write-back still runs with the latch held.
type BufferPoolManager struct {
	diskManager disk.DiskManager
	pages       []*page.Page
	replacer    *ClockReplacer
	freeList    *queue.Queue
	pageTable   map[types.PageID]FrameID
	loading     map[types.PageID]chan struct{}
	latch       common.Mutex
}

// NewBufferPoolManager returns an empty buffer pool manager of poolSize
// frames backed by diskManager.
func NewBufferPoolManager(poolSize uint32, diskManager disk.DiskManager) *BufferPoolManager {
	freeList := queue.New()
	pages := make([]*page.Page, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList.Enqueue(FrameID(i))
	}

	return &BufferPoolManager{
		diskManager: diskManager,
		pages:       pages,
		replacer:    NewClockReplacer(poolSize),
		freeList:    freeList,
		pageTable:   make(map[types.PageID]FrameID),
		loading:     make(map[types.PageID]chan struct{}),
	}
}

// NewBufferPoolManagerFromConfig builds a disk manager via
// disk.NewFromConfig(cfg) and wraps it in a pool of cfg.PoolSize frames.
func NewBufferPoolManagerFromConfig(cfg common.Config) *BufferPoolManager {
	return NewBufferPoolManager(uint32(cfg.PoolSize), disk.NewFromConfig(cfg))
}

// getFrameID returns a frame to (re)use, draining the free list before
// asking the replacer for a victim, per the eviction rule in section 4.2.
// Caller must hold b.latch.
func (b *BufferPoolManager) getFrameID() (*FrameID, bool) {
	if b.freeList.Len() > 0 {
		frameID := b.freeList.Dequeue().(FrameID)
		return &frameID, true
	}
	return b.replacer.Victim(), false
}

// FetchPage fetches the requested page from the buffer pool, reading it
// from disk on a miss.
func (b *BufferPoolManager) FetchPage(pageID types.PageID) *page.Page {
	b.latch.Lock()

	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]
		pg.IncPinCount()
		b.replacer.Pin(frameID)
		b.latch.Unlock()
		if common.EnableDebug {
			common.ShPrintf(common.DebugInfo, "FetchPage: PageId=%d PinCount=%d\n", pg.ID(), pg.PinCount())
		}
		return pg
	}

	if ch, inFlight := b.loading[pageID]; inFlight {
		b.latch.Unlock()
		<-ch
		return b.FetchPage(pageID)
	}

	frameID, isFromFreeList := b.getFrameID()
	if frameID == nil {
		b.latch.Unlock()
		return nil
	}
	common.SHAssert(int(*frameID) < len(b.pages), "frame id returned by getFrameID is out of range")

	var evicted *page.Page
	if !isFromFreeList {
		evicted = b.pages[*frameID]
		if evicted != nil {
			delete(b.pageTable, evicted.ID())
			if common.EnableDebug {
				common.ShPrintf(common.DebugInfo, "FetchPage: page=%d is removed from pageTable.\n", evicted.ID())
			}
			// Flush the victim's dirty contents to disk before b.latch is
			// released: a concurrent FetchPage for this same evicted page
			// id must never see the pageTable miss (above) before the
			// write-back that makes a fresh disk read for it safe has
			// actually completed, or it reloads stale pre-edit bytes.
			if evicted.IsDirty() {
				data := evicted.Data()
				b.diskManager.WritePage(evicted.ID(), data[:])
			}
		}
	}

	loaded := make(chan struct{})
	b.loading[pageID] = loaded
	b.latch.Unlock()

	data := make([]byte, common.PageSize)
	err := b.diskManager.ReadPage(pageID, data)

	b.latch.Lock()
	delete(b.loading, pageID)
	close(loaded)

	if err != nil {
		b.freeList.Enqueue(*frameID)
		b.latch.Unlock()
		return nil
	}

	var pg *page.Page
	if evicted != nil {
		evicted.Reset(pageID)
		copy(evicted.Data()[:], data)
		evicted.IncPinCount()
		pg = evicted
	} else {
		var pageData [page.PageSize]byte
		copy(pageData[:], data)
		pg = page.New(pageID, false, &pageData)
	}
	b.pageTable[pageID] = *frameID
	b.pages[*frameID] = pg
	b.replacer.Pin(*frameID)
	b.latch.Unlock()

	if common.EnableDebug {
		common.ShPrintf(common.DebugInfo, "FetchPage: PageId=%d PinCount=%d\n", pg.ID(), pg.PinCount())
	}
	return pg
}

// UnpinPage unpins the target page from the buffer pool.
func (b *BufferPoolManager) UnpinPage(pageID types.PageID, isDirty bool) error {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		if common.EnableDebug {
			common.ShPrintf(common.DebugInfo, "UnpinPage: could not find page! PageId=%d\n", pageID)
		}
		return fmt.Errorf("relaydb/buffer: page %d not found in buffer pool", pageID)
	}

	pg := b.pages[frameID]
	pg.SetIsDirty(pg.IsDirty() || isDirty)
	pg.DecPinCount()
	if pg.PinCount() <= 0 {
		b.replacer.Unpin(frameID)
	}
	if common.EnableDebug {
		common.ShPrintf(common.DebugInfo, "UnpinPage: PageId=%d PinCount=%d\n", pg.ID(), pg.PinCount())
	}
	return nil
}

// FlushPage flushes the target page to disk.
func (b *BufferPoolManager) FlushPage(pageID types.PageID) bool {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return false
	}

	pg := b.pages[frameID]
	if pg.IsDirty() {
		data := pg.Data()
		b.diskManager.WritePage(pageID, data[:])
		pg.SetIsDirty(false)
	}
	return true
}

// NewPage allocates a new page in the buffer pool with the disk manager's
// help. Returns nil if the pool is exhausted (every frame pinned).
func (b *BufferPoolManager) NewPage() *page.Page {
	b.latch.Lock()

	frameID, isFromFreeList := b.getFrameID()
	if frameID == nil {
		b.latch.Unlock()
		return nil
	}

	var evicted *page.Page
	if !isFromFreeList {
		evicted = b.pages[*frameID]
		if evicted != nil {
			delete(b.pageTable, evicted.ID())
			if common.EnableDebug {
				common.ShPrintf(common.DebugInfo, "NewPage: page=%d is removed from pageTable.\n", evicted.ID())
			}
			// See FetchPage: the write-back must complete before b.latch is
			// released, or a concurrent FetchPage for this evicted page id
			// can reload stale bytes between the pageTable delete above and
			// this write actually landing.
			if evicted.IsDirty() {
				data := evicted.Data()
				b.diskManager.WritePage(evicted.ID(), data[:])
			}
		}
	}
	b.latch.Unlock()

	pageID := b.diskManager.AllocatePage()

	b.latch.Lock()
	var pg *page.Page
	if evicted != nil {
		evicted.Reset(pageID)
		evicted.IncPinCount()
		pg = evicted
	} else {
		pg = page.NewEmpty(pageID)
	}
	b.pageTable[pageID] = *frameID
	b.pages[*frameID] = pg
	b.replacer.Pin(*frameID)
	b.latch.Unlock()

	if common.EnableDebug {
		common.ShPrintf(common.DebugInfo, "NewPage: returned pageID: %d\n", pageID)
	}
	return pg
}

// DeletePage deletes a page from the buffer pool, returning its frame to
// the free list.
func (b *BufferPoolManager) DeletePage(pageID types.PageID) error {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return nil
	}

	pg := b.pages[frameID]
	if pg.PinCount() > 0 {
		return fmt.Errorf("relaydb/buffer: page %d is pinned, cannot delete", pageID)
	}
	common.SHAssert(pg.PinCount() <= 0, "DeletePage must not proceed on a pinned page")

	delete(b.pageTable, pg.ID())
	b.replacer.Pin(frameID)
	b.diskManager.DeallocatePage(pageID)
	b.pages[frameID] = nil
	b.freeList.Enqueue(frameID)

	return nil
}

// FlushAllPages flushes every dirty page in the buffer pool to disk.
func (b *BufferPoolManager) FlushAllPages() {
	b.latch.Lock()
	pageIDs := make([]types.PageID, 0, len(b.pageTable))
	for pageID := range b.pageTable {
		pageIDs = append(pageIDs, pageID)
	}
	b.latch.Unlock()

	for _, pageID := range pageIDs {
		b.FlushPage(pageID)
	}
}

// DumpState prints pinned pages and replacer occupancy for interactive
// debugging, in the manner of the teacher's PrintBufferUsageState /
// PrintReplacerInternalState. Not on any production code path.
func (b *BufferPoolManager) DumpState() {
	b.latch.Lock()
	defer b.latch.Unlock()

	lines := make([]string, 0, len(b.pageTable)+1)
	for pageID, frameID := range b.pageTable {
		pg := b.pages[frameID]
		lines = append(lines, fmt.Sprintf("page=%d frame=%d pinCount=%d dirty=%t", pageID, frameID, pg.PinCount(), pg.IsDirty()))
	}
	lines = append(lines, fmt.Sprintf("replacer.Size()=%d freeList.Len()=%d", b.replacer.Size(), b.freeList.Len()))
	common.DumpLines("bufferpool", lines)
}
