// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dsnet/golib/memfile"

	"github.com/relaydb/relaydb/common"
	"github.com/relaydb/relaydb/types"
)

// VirtualDiskManagerImpl is an in-memory DiskManager backed by memfile.File
// instead of an os.File, for tests and the on-memory storage mode
// (common.Config.OnMemStorage). Unlike DiskManagerImpl, it recycles a
// deallocated page's buffer offset for the next AllocatePage call, rather
// than growing the backing buffer without bound.
type VirtualDiskManagerImpl struct {
	db              *memfile.File
	fileName        string
	nextPageID      types.PageID
	numWrites       uint64
	size            int64
	fileMutex       common.Mutex
	reusableSpaceID []types.PageID
	spaceIDConvMap  map[types.PageID]types.PageID
	deallocated     mapset.Set[types.PageID]
}

// NewVirtualDiskManagerImpl returns a DiskManager whose contents live only
// in process memory. dbFilename is kept only as a label, never opened.
func NewVirtualDiskManagerImpl(dbFilename string) DiskManager {
	return &VirtualDiskManagerImpl{
		db:             memfile.New(make([]byte, 0)),
		fileName:       dbFilename,
		nextPageID:     types.PageID(0),
		spaceIDConvMap: make(map[types.PageID]types.PageID),
		deallocated:    mapset.NewSet[types.PageID](),
	}
}

// ShutDown is a no-op: there is no backing file descriptor to release.
func (d *VirtualDiskManagerImpl) ShutDown() {}

// convToSpaceID maps a page id onto the backing-buffer offset it currently
// occupies, following the reuse remapping installed by AllocatePage.
func (d *VirtualDiskManagerImpl) convToSpaceID(pageID types.PageID) types.PageID {
	if convedID, exist := d.spaceIDConvMap[pageID]; exist {
		return convedID
	}
	return pageID
}

// WritePage writes a page into the in-memory buffer.
func (d *VirtualDiskManagerImpl) WritePage(pageID types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	offset := int64(d.convToSpaceID(pageID)) * int64(common.PageSize)
	if _, err := d.db.WriteAt(pageData, offset); err != nil {
		return err
	}

	if offset >= d.size {
		d.size = offset + int64(len(pageData))
	}
	d.numWrites++
	return nil
}

// ReadPage reads a page from the in-memory buffer into pageData.
func (d *VirtualDiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	if d.deallocated.Contains(pageID) {
		return ErrPageDeallocated
	}

	offset := int64(d.convToSpaceID(pageID)) * int64(common.PageSize)
	if offset > d.size || offset+int64(len(pageData)) > d.size {
		return errors.New("relaydb/disk: I/O error past end of file")
	}

	_, err := d.db.ReadAt(pageData, offset)
	return err
}

// AllocatePage allocates a new page id, reusing the backing-buffer slot of
// a previously deallocated page when one is available.
func (d *VirtualDiskManagerImpl) AllocatePage() types.PageID {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	ret := d.nextPageID
	if len(d.reusableSpaceID) > 0 {
		reuseID := d.reusableSpaceID[0]
		d.reusableSpaceID = d.reusableSpaceID[1:]
		d.spaceIDConvMap[ret] = reuseID
	}
	d.nextPageID++
	return ret
}

// DeallocatePage marks pageID as no longer holding live data and frees its
// backing-buffer slot for reuse by a later AllocatePage call.
func (d *VirtualDiskManagerImpl) DeallocatePage(pageID types.PageID) {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	d.deallocated.Add(pageID)
	if convedID, exist := d.spaceIDConvMap[pageID]; exist {
		d.reusableSpaceID = append(d.reusableSpaceID, convedID)
		delete(d.spaceIDConvMap, pageID)
	} else {
		d.reusableSpaceID = append(d.reusableSpaceID, pageID)
	}
}

// GetNumWrites returns the number of WritePage calls that completed.
func (d *VirtualDiskManagerImpl) GetNumWrites() uint64 {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()
	return d.numWrites
}

// Size returns the current size of the backing buffer in bytes.
func (d *VirtualDiskManagerImpl) Size() int64 {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()
	return d.size
}

// RemoveDBFile is a no-op: there is no backing file to remove.
func (d *VirtualDiskManagerImpl) RemoveDBFile() {}
