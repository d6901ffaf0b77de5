package page

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/relaydb/relaydb/types"
)

func TestHashTableHeaderPage_AddBlockPageIdAppendsInOrder(t *testing.T) {
	var buf [PageSize]byte
	header := (*HashTableHeaderPage)(unsafe.Pointer(&buf))

	header.SetPageId(types.PageID(1))
	header.SetSize(3)
	header.AddBlockPageId(types.PageID(10))
	header.AddBlockPageId(types.PageID(11))

	assert.Equal(t, 2, header.NumBlocks())
	assert.Equal(t, types.PageID(10), header.GetBlockPageId(0))
	assert.Equal(t, types.PageID(11), header.GetBlockPageId(1))
	assert.Equal(t, 3, header.GetSize())
}
