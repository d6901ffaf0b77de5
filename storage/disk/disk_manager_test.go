package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaydb/relaydb/common"
)

func TestVirtualDiskManager_WriteReadRoundTrip(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("round_trip.db")
	defer dm.ShutDown()

	pageID := dm.AllocatePage()
	want := make([]byte, common.PageSize)
	copy(want, []byte("hello page"))

	assert.NoError(t, dm.WritePage(pageID, want))

	got := make([]byte, common.PageSize)
	assert.NoError(t, dm.ReadPage(pageID, got))
	assert.Equal(t, want, got)
	assert.EqualValues(t, 1, dm.GetNumWrites())
}

func TestVirtualDiskManager_ReadDeallocatedPageFails(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("dealloc.db")
	defer dm.ShutDown()

	pageID := dm.AllocatePage()
	buf := make([]byte, common.PageSize)
	assert.NoError(t, dm.WritePage(pageID, buf))

	dm.DeallocatePage(pageID)

	err := dm.ReadPage(pageID, buf)
	assert.ErrorIs(t, err, ErrPageDeallocated)
}

func TestVirtualDiskManager_AllocatePageReusesDeallocatedSlot(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("reuse.db")
	defer dm.ShutDown()

	first := dm.AllocatePage()
	dm.DeallocatePage(first)

	second := dm.AllocatePage()
	assert.NotEqual(t, first, second)

	buf := make([]byte, common.PageSize)
	copy(buf, []byte("second"))
	assert.NoError(t, dm.WritePage(second, buf))
	// second occupies first's slot at offset 0, so the buffer holds one page
	assert.EqualValues(t, common.PageSize, dm.Size())
}

func TestDiskManagerTest_RoundTrip(t *testing.T) {
	dm := NewDiskManagerTest()
	defer dm.ShutDown()

	pageID := dm.AllocatePage()
	want := make([]byte, common.PageSize)
	copy(want, []byte("on disk"))
	assert.NoError(t, dm.WritePage(pageID, want))

	got := make([]byte, common.PageSize)
	assert.NoError(t, dm.ReadPage(pageID, got))
	assert.Equal(t, want, got)
}
