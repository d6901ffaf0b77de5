// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"

	"github.com/relaydb/relaydb/common"
	"github.com/relaydb/relaydb/types"
)

// ErrPageDeallocated is returned by ReadPage when the requested page id has
// been deallocated.
var ErrPageDeallocated = errors.New("relaydb/disk: page id refers to a deallocated page")

// DiskManager takes care of the allocation and deallocation of pages within
// a database, and performs the reading and writing of fixed-size pages to
// and from disk. The write-ahead log is a separate collaborator and out of
// scope: this interface only moves data pages.
type DiskManager interface {
	ReadPage(types.PageID, []byte) error
	WritePage(types.PageID, []byte) error
	AllocatePage() types.PageID
	DeallocatePage(types.PageID)
	GetNumWrites() uint64
	ShutDown()
	Size() int64
	RemoveDBFile()
}

// NewFromConfig selects a DiskManager backend according to cfg.OnMemStorage:
// an os.File-backed DiskManagerImpl by default, or a memfile-backed
// VirtualDiskManagerImpl when the caller asked for on-memory storage.
func NewFromConfig(cfg common.Config) DiskManager {
	if cfg.OnMemStorage {
		return NewVirtualDiskManagerImpl(cfg.DBFileName)
	}
	return NewDiskManagerImpl(cfg.DBFileName)
}
