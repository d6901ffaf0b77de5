package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageID_IsValid(t *testing.T) {
	assert.True(t, PageID(0).IsValid())
	assert.True(t, PageID(42).IsValid())
	assert.False(t, InvalidPageID.IsValid())
	assert.False(t, PageID(-2).IsValid())
}

func TestPageID_SerializeRoundTrip(t *testing.T) {
	id := PageID(12345)
	got := NewPageIDFromBytes(id.Serialize())
	assert.Equal(t, id, got)
}
