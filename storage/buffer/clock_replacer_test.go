package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockReplacer_EmptyVictimIsAbsent(t *testing.T) {
	r := NewClockReplacer(3)
	assert.Nil(t, r.Victim())
	assert.EqualValues(t, 0, r.Size())
}

// S1 — Clock victim order.
func TestClockReplacer_VictimOrder(t *testing.T) {
	r := NewClockReplacer(3)
	r.Unpin(0)
	r.Unpin(1)
	r.Unpin(2)

	assert.EqualValues(t, FrameID(0), *r.Victim())
	assert.EqualValues(t, FrameID(1), *r.Victim())
	assert.EqualValues(t, FrameID(2), *r.Victim())
	assert.Nil(t, r.Victim())
}

// S2 — Second chance.
func TestClockReplacer_SecondChance(t *testing.T) {
	r := NewClockReplacer(2)
	r.Unpin(0)
	r.Unpin(1)
	r.Unpin(0) // refreshes 0's reference bit

	assert.EqualValues(t, FrameID(1), *r.Victim())
	assert.EqualValues(t, FrameID(0), *r.Victim())
}

func TestClockReplacer_PinRemovesFromVictimPool(t *testing.T) {
	r := NewClockReplacer(2)
	r.Unpin(0)
	r.Unpin(1)
	r.Pin(0)

	assert.EqualValues(t, 1, r.Size())
	assert.EqualValues(t, FrameID(1), *r.Victim())
	assert.Nil(t, r.Victim())
}

func TestClockReplacer_OutOfRangeIsNoop(t *testing.T) {
	r := NewClockReplacer(2)
	assert.NotPanics(t, func() {
		r.Pin(99)
		r.Unpin(99)
	})
	assert.EqualValues(t, 0, r.Size())
}
