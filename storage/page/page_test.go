package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaydb/relaydb/types"
)

func TestPage_PinCountLifecycle(t *testing.T) {
	p := NewEmpty(types.PageID(1))
	assert.EqualValues(t, 1, p.PinCount())

	p.IncPinCount()
	assert.EqualValues(t, 2, p.PinCount())

	p.DecPinCount()
	p.DecPinCount()
	assert.EqualValues(t, 0, p.PinCount())

	// floors at zero, never goes negative
	p.DecPinCount()
	assert.EqualValues(t, 0, p.PinCount())
}

func TestPage_DirtyFlag(t *testing.T) {
	p := NewEmpty(types.PageID(1))
	assert.False(t, p.IsDirty())
	p.SetIsDirty(true)
	assert.True(t, p.IsDirty())
}
