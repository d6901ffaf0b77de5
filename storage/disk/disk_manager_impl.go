// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"
	"io"
	"log"
	"os"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/relaydb/relaydb/common"
	"github.com/relaydb/relaydb/types"
)

// DiskManagerImpl is the os.File-backed implementation of DiskManager.
type DiskManagerImpl struct {
	db          *os.File
	fileName    string
	nextPageID  types.PageID
	numWrites   uint64
	size        int64
	fileMutex   common.Mutex
	deallocated mapset.Set[types.PageID]
}

// NewDiskManagerImpl opens (creating if absent) dbFilename and returns a
// DiskManager backed by it.
func NewDiskManagerImpl(dbFilename string) DiskManager {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		log.Fatalln("can't open db file")
		return nil
	}

	fileInfo, err := file.Stat()
	if err != nil {
		log.Fatalln("file info error")
		return nil
	}

	fileSize := fileInfo.Size()
	nPages := fileSize / common.PageSize

	nextPageID := types.PageID(0)
	if nPages > 0 {
		nextPageID = types.PageID(nPages)
	}

	return &DiskManagerImpl{
		db:          file,
		fileName:    dbFilename,
		nextPageID:  nextPageID,
		size:        fileSize,
		deallocated: mapset.NewSet[types.PageID](),
	}
}

// ShutDown closes the database file.
func (d *DiskManagerImpl) ShutDown() {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()
	if err := d.db.Close(); err != nil {
		panic("close of db file failed: " + err.Error())
	}
}

// WritePage writes a page to the database file.
func (d *DiskManagerImpl) WritePage(pageID types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	offset := int64(pageID) * int64(common.PageSize)
	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	bytesWritten, err := d.db.Write(pageData)
	if err != nil {
		return err
	}
	if bytesWritten != common.PageSize {
		return errors.New("relaydb/disk: bytes written not equal to page size")
	}

	if offset >= d.size {
		d.size = offset + int64(bytesWritten)
	}

	d.numWrites++
	return d.db.Sync()
}

// ReadPage reads a page from the database file into pageData.
func (d *DiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	if d.deallocated.Contains(pageID) {
		return ErrPageDeallocated
	}

	offset := int64(pageID) * int64(common.PageSize)

	fileInfo, err := d.db.Stat()
	if err != nil {
		return errors.New("relaydb/disk: file info error")
	}
	if offset > fileInfo.Size() {
		return errors.New("relaydb/disk: I/O error past end of file")
	}

	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	bytesRead, err := d.db.Read(pageData)
	if err != nil && err != io.EOF {
		return errors.New("relaydb/disk: I/O error while reading")
	}
	if bytesRead < common.PageSize {
		for i := bytesRead; i < common.PageSize; i++ {
			pageData[i] = 0
		}
	}
	return nil
}

// AllocatePage allocates a new page id. Ids of deallocated pages are never
// handed back out by this backend: they stay tombstoned in d.deallocated.
func (d *DiskManagerImpl) AllocatePage() types.PageID {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	ret := d.nextPageID
	d.nextPageID++
	return ret
}

// DeallocatePage marks pageID as no longer holding live data. Reads of a
// deallocated page id return ErrPageDeallocated.
func (d *DiskManagerImpl) DeallocatePage(pageID types.PageID) {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()
	d.deallocated.Add(pageID)
}

// GetNumWrites returns the number of WritePage calls that completed.
func (d *DiskManagerImpl) GetNumWrites() uint64 {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()
	return d.numWrites
}

// Size returns the current size of the backing file in bytes.
func (d *DiskManagerImpl) Size() int64 {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()
	return d.size
}

// RemoveDBFile deletes the backing file. Call only after ShutDown.
func (d *DiskManagerImpl) RemoveDBFile() {
	if err := os.Remove(d.fileName); err != nil {
		panic("file remove failed: " + err.Error())
	}
}
