// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package hash

import (
	"bytes"
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

const primeFactor uint32 = 10000019

func hashBytes(data []byte, length uint32) uint32 {
	// https://github.com/greenplum-db/gpos/blob/b53c1acd6285de94044ff91fbee91589543feba1/libgpos/src/utils.cpp#L126
	hash := length
	for i := 0; i < int(length); i++ {
		hash = ((hash << 5) ^ (hash >> 27)) ^ uint32(data[i])
	}
	return hash
}

// CombineHashes folds two hash values into one, used when composing a
// hash over a multi-column key.
func CombineHashes(l, r uint32) uint32 {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, l)
	binary.Write(buf, binary.LittleEndian, r)
	return hashBytes(buf.Bytes(), 4*2)
}

// SumHashes combines two hash values by modular addition.
func SumHashes(l, r uint32) uint32 {
	return (l%primeFactor + r%primeFactor) % primeFactor
}

// Hasher computes a deterministic, referentially transparent hash of a
// key's byte representation, per section 2's Hasher collaborator.
type Hasher interface {
	Hash(key []byte) uint64
}

// Comparator provides a total order over keys, per section 2's Key
// comparator collaborator.
type Comparator interface {
	Compare(a, b []byte) int
}

// MurmurHasher is the default Hasher, grounded on the teacher's own use of
// spaolacci/murmur3 for its (int-keyed) hash table.
type MurmurHasher struct{}

func (MurmurHasher) Hash(key []byte) uint64 {
	h := murmur3.New64()
	h.Write(key)
	return h.Sum64()
}

// ByteComparator is the default Comparator: lexicographic order over the
// raw key bytes.
type ByteComparator struct{}

func (ByteComparator) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}
