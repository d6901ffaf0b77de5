// this code is adapted from https://github.com/brunocalza/go-bustub and
// https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package page

// HashTableBlockPage stores indexed keys and values together within a
// block page, supporting non-unique keys.
//
// The teacher's original block page (and BusTub's C++ HashTableBlockPage<
// KeyType, ValueType, KeyComparator>) is a fixed struct overlaid directly
// onto a page's byte buffer via unsafe.Pointer, with the slot array's
// element type and count fixed at compile time by a Go generic type
// parameter. Go has no const-generic array lengths, so that approach
// cannot generalize to a hash table whose key/value width is chosen at
// construction time: this type instead wraps a page's byte slice and a
// keyWidth/valueWidth pair fixed at table construction, computing bitmap
// and slot offsets at runtime. It is still a zero-copy view over the
// page's backing array, not a decoded copy.
//
// Block page format (slot i holds KEY(i) followed by VALUE(i); a pair's
// slot is chosen by the table's probe, not by key order):
//
//	--------------------------------------------------------------------
//	| occupied bitmap | readable bitmap | KEY(1)+VALUE(1) | ... | KEY(n)+VALUE(n)
//	--------------------------------------------------------------------
type HashTableBlockPage struct {
	buf        []byte
	keyWidth   int
	valueWidth int
	capacity   int
	bitmapLen  int
}

// SlotCapacity returns the number of (key, value) slots that fit in a
// single page for the given key/value widths — the runtime equivalent of
// the teacher's compile-time BlockArraySize constant.
func SlotCapacity(keyWidth, valueWidth int) int {
	slotWidth := keyWidth + valueWidth
	n := (8 * PageSize) / (8*slotWidth + 2)
	for n > 0 && 2*bitmapBytes(n)+n*slotWidth > PageSize {
		n--
	}
	return n
}

func bitmapBytes(n int) int {
	return (n-1)/8 + 1
}

// NewHashTableBlockPage wraps buf as a block page view with the given
// key/value widths.
func NewHashTableBlockPage(buf *[PageSize]byte, keyWidth, valueWidth int) *HashTableBlockPage {
	capacity := SlotCapacity(keyWidth, valueWidth)
	return &HashTableBlockPage{
		buf:        buf[:],
		keyWidth:   keyWidth,
		valueWidth: valueWidth,
		capacity:   capacity,
		bitmapLen:  bitmapBytes(capacity),
	}
}

// Capacity returns the number of slots this block page holds.
func (p *HashTableBlockPage) Capacity() int {
	return p.capacity
}

func (p *HashTableBlockPage) occupiedBitmap() []byte {
	return p.buf[0:p.bitmapLen]
}

func (p *HashTableBlockPage) readableBitmap() []byte {
	return p.buf[p.bitmapLen : 2*p.bitmapLen]
}

func (p *HashTableBlockPage) slotOffset(index int) int {
	return 2*p.bitmapLen + index*(p.keyWidth+p.valueWidth)
}

// KeyAt returns the key bytes at the given slot index.
func (p *HashTableBlockPage) KeyAt(index int) []byte {
	off := p.slotOffset(index)
	return p.buf[off : off+p.keyWidth]
}

// ValueAt returns the value bytes at the given slot index.
func (p *HashTableBlockPage) ValueAt(index int) []byte {
	off := p.slotOffset(index) + p.keyWidth
	return p.buf[off : off+p.valueWidth]
}

// Insert attempts to insert a key and value into an index in the block.
// It fails if the slot is already occupied.
func (p *HashTableBlockPage) Insert(index int, key, value []byte) bool {
	if p.IsOccupied(index) {
		return false
	}
	copy(p.KeyAt(index), key)
	copy(p.ValueAt(index), value)
	p.occupiedBitmap()[index/8] |= 1 << (index % 8)
	p.readableBitmap()[index/8] |= 1 << (index % 8)
	return true
}

// Remove clears the readable bit only, preserving the probe chain
// (tombstone).
func (p *HashTableBlockPage) Remove(index int) {
	if !p.IsReadable(index) {
		return
	}
	p.readableBitmap()[index/8] &^= 1 << (index % 8)
}

// IsOccupied reports whether an index holds a valid (or tombstoned)
// key/value pair.
func (p *HashTableBlockPage) IsOccupied(index int) bool {
	return p.occupiedBitmap()[index/8]&(1<<(index%8)) != 0
}

// IsReadable reports whether an index holds a currently-visible pair.
func (p *HashTableBlockPage) IsReadable(index int) bool {
	return p.readableBitmap()[index/8]&(1<<(index%8)) != 0
}
