// this code is adapted from original_source/src/buffer/clock_replacer.cpp
// (BusTub, Carnegie Mellon University Database Group)

package buffer

import "github.com/relaydb/relaydb/common"

// FrameID is the type for frame id.
type FrameID uint32

type replacerEntry struct {
	pinned     bool
	referenced bool
}

// ClockReplacer implements the clock (second-chance) approximation of LRU
// over a fixed universe of frame slots. Unlike the teacher's
// circular-linked-list ClockReplacer, this is the array-of-{pinned,
// referenced} form the design's data model calls for — grounded directly
// on original_source's clock_replacer.cpp rather than the teacher's port.
type ClockReplacer struct {
	frames    []replacerEntry
	clockHand uint32
	clockSize uint32
	mu        common.Mutex
}

// NewClockReplacer instantiates a new clock replacer for numFrames frame
// slots. Every frame begins pinned and not referenced: a freshly
// constructed pool holds no data, and entries only become victim-eligible
// once explicitly Unpinned.
func NewClockReplacer(numFrames uint32) *ClockReplacer {
	frames := make([]replacerEntry, numFrames)
	for i := range frames {
		frames[i] = replacerEntry{pinned: true, referenced: false}
	}
	return &ClockReplacer{frames: frames}
}

// Victim removes the victim frame as defined by the replacement policy.
// Termination is guaranteed: each full revolution clears at least one
// referenced bit, so within two revolutions a victim is found whenever
// Size() > 0.
func (c *ClockReplacer) Victim() *FrameID {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.clockSize > 0 {
		c.clockHand %= uint32(len(c.frames))
		entry := &c.frames[c.clockHand]
		switch {
		case entry.pinned:
			c.clockHand++
		case entry.referenced:
			entry.referenced = false
			c.clockHand++
		default:
			entry.pinned = true
			c.clockSize--
			victim := FrameID(c.clockHand)
			c.clockHand++
			return &victim
		}
	}
	return nil
}

// Pin marks a frame pinned, indicating that it should not be victimized
// until it is unpinned. Out-of-range ids are a silent no-op.
func (c *ClockReplacer) Pin(id FrameID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if uint32(id) >= uint32(len(c.frames)) {
		return
	}
	entry := &c.frames[id]
	if !entry.pinned {
		entry.pinned = true
		c.clockSize--
	}
}

// Unpin marks a frame unpinned, indicating that it can now be victimized.
// Out-of-range ids are a silent no-op.
func (c *ClockReplacer) Unpin(id FrameID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if uint32(id) >= uint32(len(c.frames)) {
		return
	}
	entry := &c.frames[id]
	if entry.pinned {
		c.clockSize++
	}
	entry.pinned = false
	entry.referenced = true
}

// Size returns the number of unpinned (victim-eligible) frames.
func (c *ClockReplacer) Size() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clockSize
}
