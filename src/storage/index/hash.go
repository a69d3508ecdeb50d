package index

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/pkg/utils"
)

// DefaultHashSeed keeps bucket placement stable across processes.
const DefaultHashSeed uint64 = 0x9e3779b97f4a7c15

// keyHasher is FNV-1a whose initial state is perturbed by a seed.
type keyHasher struct {
	seed uint64
	h    hash.Hash64
}

func newKeyHasher(seed uint64) keyHasher {
	h := keyHasher{seed: seed}
	h.reset()
	return h
}

func (h *keyHasher) reset() {
	h.h = fnv.New64a()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], h.seed)
	_, _ = h.h.Write(b[:])
}

// sum hashes the (file, page) pair. The hasher is reset before use so
// that equal keys always land in the same bucket.
func (h *keyHasher) sum(key common.PageIdentity) uint64 {
	h.reset()

	_, _ = h.h.Write(utils.Must(key.MarshalBinary()))

	return h.h.Sum64()
}
