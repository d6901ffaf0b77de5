// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package common

import (
	"github.com/sasha-s/go-deadlock"
)

// ReaderWriterLatch is the latch every page and the hash table's
// table_latch acquire. It is backed by
// go-deadlock rather than sync.RWMutex so that a lock-ordering mistake
// across the pool/page/table latch hierarchy in section 4.3 surfaces as a
// panic with a waiter graph instead of a silent hang.
type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex deadlock.RWMutex
}

// NewRWLatch constructs a ReaderWriterLatch.
func NewRWLatch() ReaderWriterLatch {
	return &readerWriterLatch{}
}

func (l *readerWriterLatch) WLock()   { l.mutex.Lock() }
func (l *readerWriterLatch) WUnlock() { l.mutex.Unlock() }
func (l *readerWriterLatch) RLock()   { l.mutex.RLock() }
func (l *readerWriterLatch) RUnlock() { l.mutex.RUnlock() }

// Mutex is a plain mutual-exclusion latch, used where there is no reader
// mode to distinguish (the buffer pool latch, the replacer latch).
type Mutex struct {
	mu deadlock.Mutex
}

func (m *Mutex) Lock()   { m.mu.Lock() }
func (m *Mutex) Unlock() { m.mu.Unlock() }
