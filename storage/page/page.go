// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"sync/atomic"

	"github.com/relaydb/relaydb/common"
	"github.com/relaydb/relaydb/types"
)

// PageSize is the fixed byte width of every frame's backing buffer.
const PageSize = common.PageSize

// Page is an in-memory frame: a page-sized byte buffer plus the metadata
// the buffer pool needs to track its lifecycle. Its latch guards the page
// payload only — the buffer pool never acquires it, per the layering in
// section 5 of the design notes: the pool's own latch and a page's latch
// serve different critical sections.
type Page struct {
	id       types.PageID
	pinCount int32
	isDirty  bool
	data     *[PageSize]byte
	latch    common.ReaderWriterLatch
}

// New wraps an existing byte buffer as a Page with the given id and dirty
// flag, pinned once.
func New(id types.PageID, isDirty bool, data *[PageSize]byte) *Page {
	return &Page{id: id, pinCount: 1, isDirty: isDirty, data: data, latch: common.NewRWLatch()}
}

// NewEmpty returns a freshly zeroed Page pinned once, as produced by
// BufferPoolManager.NewPage.
func NewEmpty(id types.PageID) *Page {
	return &Page{id: id, pinCount: 1, data: &[PageSize]byte{}, latch: common.NewRWLatch()}
}

// IncPinCount increments the pin count.
func (p *Page) IncPinCount() {
	atomic.AddInt32(&p.pinCount, 1)
}

// DecPinCount decrements the pin count, floored at zero.
func (p *Page) DecPinCount() {
	for {
		cur := atomic.LoadInt32(&p.pinCount)
		if cur <= 0 {
			return
		}
		if atomic.CompareAndSwapInt32(&p.pinCount, cur, cur-1) {
			return
		}
	}
}

// PinCount returns the current pin count.
func (p *Page) PinCount() int32 {
	return atomic.LoadInt32(&p.pinCount)
}

// ID returns the page id currently installed at this frame.
func (p *Page) ID() types.PageID {
	return p.id
}

// Data returns the frame's backing buffer.
func (p *Page) Data() *[PageSize]byte {
	return p.data
}

// SetIsDirty sets the dirty flag.
func (p *Page) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

// IsDirty reports whether the frame's contents differ from disk.
func (p *Page) IsDirty() bool {
	return p.isDirty
}

// Latch returns the page's reader/writer latch, held by the client (the
// hash index, typically) while reading or mutating page contents.
func (p *Page) Latch() common.ReaderWriterLatch {
	return p.latch
}

// Reset reinstalls this frame with a new page id and zeroed contents,
// used by the buffer pool when a frame is reused for a different page.
func (p *Page) Reset(id types.PageID) {
	p.id = id
	p.pinCount = 0
	p.isDirty = false
	p.data = &[PageSize]byte{}
}
