package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaydb/relaydb/types"
)

func TestRID_PackUnpackRoundTrip(t *testing.T) {
	rid := NewRID(types.PageID(42), 7)
	got := UnpackRID(rid.Pack())

	assert.Equal(t, rid.GetPageId(), got.GetPageId())
	assert.Equal(t, rid.GetSlot(), got.GetSlot())
}

func TestRID_SetOverwrites(t *testing.T) {
	var rid RID
	rid.Set(types.PageID(1), 2)
	assert.Equal(t, types.PageID(1), rid.GetPageId())
	assert.EqualValues(t, 2, rid.GetSlot())
}
