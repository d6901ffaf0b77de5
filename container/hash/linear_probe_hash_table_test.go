package hash

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaydb/relaydb/storage/buffer"
	"github.com/relaydb/relaydb/storage/disk"
)

func newTestTable(t *testing.T, numBuckets int) *LinearProbeHashTable {
	t.Helper()
	dm := disk.NewVirtualDiskManagerImpl(t.Name() + ".db")
	t.Cleanup(dm.ShutDown)
	bpm := buffer.NewBufferPoolManager(64, dm)
	return NewLinearProbeHashTable(bpm, numBuckets, 4, 4, nil, nil)
}

func key(n uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, n)
	return b
}

// S4 — Duplicate suppression.
func TestLinearProbeHashTable_DuplicateSuppression(t *testing.T) {
	ht := newTestTable(t, 2)

	assert.True(t, ht.Insert(key(5), key(7)))
	assert.False(t, ht.Insert(key(5), key(7)))
	assert.True(t, ht.Insert(key(5), key(8)))

	values := ht.GetValue(key(5))
	assert.Len(t, values, 2)
	assert.Contains(t, values, key(7))
	assert.Contains(t, values, key(8))
}

func TestLinearProbeHashTable_RemoveThenGetValueEmpty(t *testing.T) {
	ht := newTestTable(t, 2)

	assert.True(t, ht.Insert(key(1), key(11)))
	assert.True(t, ht.Remove(key(1), key(11)))
	assert.Empty(t, ht.GetValue(key(1)))

	// second removal of an already-tombstoned pair fails
	assert.False(t, ht.Remove(key(1), key(11)))
}

func TestLinearProbeHashTable_GetSizeIsLogicalCapacity(t *testing.T) {
	ht := newTestTable(t, 2)
	capacity := ht.blockCapacity()
	assert.Equal(t, 2*capacity, ht.GetSize())
}

// constantHasher forces every key into the same slot so Insert must probe
// forward past whatever key already occupies it.
type constantHasher struct{}

func (constantHasher) Hash(key []byte) uint64 { return 0 }

// S5 — collision survives a tombstone: (2,20) probes past (1,10) because
// both hash to the same original offset; removing (1,10) must not break
// the probe chain that (2,20) depends on.
func TestLinearProbeHashTable_CollisionSurvivesEarlierRemoval(t *testing.T) {
	dm := disk.NewVirtualDiskManagerImpl(t.Name() + ".db")
	t.Cleanup(dm.ShutDown)
	bpm := buffer.NewBufferPoolManager(64, dm)
	ht := NewLinearProbeHashTable(bpm, 1, 4, 4, constantHasher{}, nil)

	assert.True(t, ht.Insert(key(1), key(10)))
	assert.True(t, ht.Insert(key(2), key(20)))

	assert.True(t, ht.Remove(key(1), key(10)))

	values := ht.GetValue(key(2))
	assert.Equal(t, [][]byte{key(20)}, values)
	assert.Empty(t, ht.GetValue(key(1)))
}

// S6 — Resize doubling: fill a small table and confirm growth keeps every
// pair retrievable.
func TestLinearProbeHashTable_ResizeDoubling(t *testing.T) {
	ht := newTestTable(t, 1)
	initial := ht.GetSize()

	inserted := make(map[uint32]uint32)
	for i := uint32(0); i < uint32(initial)+5; i++ {
		v := i + 1000
		assert.True(t, ht.Insert(key(i), key(v)))
		inserted[i] = v
	}

	assert.GreaterOrEqual(t, ht.GetSize(), 2*initial)

	for k, v := range inserted {
		values := ht.GetValue(key(k))
		assert.Contains(t, values, key(v))
	}
}
