package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
)

func TestKeyHasher_Determinism(t *testing.T) {
	key := common.PageIdentity{FileID: 3, PageID: 17}

	h1 := newKeyHasher(123456789)
	h2 := newKeyHasher(123456789)

	require.Equal(t, h1.sum(key), h2.sum(key), "same seed must produce same hash")

	// the hasher is reusable: hashing again gives the same value
	first := h1.sum(key)
	_ = h1.sum(common.PageIdentity{FileID: 1, PageID: 1})
	require.Equal(t, first, h1.sum(key))
}

func TestKeyHasher_SeedInfluence(t *testing.T) {
	key := common.PageIdentity{FileID: 3, PageID: 17}

	a := newKeyHasher(123456789)
	b := newKeyHasher(987654321)

	assert.NotEqual(t, a.sum(key), b.sum(key), "different seeds should normally produce different hashes")
}

func TestKeyHasher_FileAndPageAreNotInterchangeable(t *testing.T) {
	h := newKeyHasher(DefaultHashSeed)

	assert.NotEqual(
		t,
		h.sum(common.PageIdentity{FileID: 1, PageID: 2}),
		h.sum(common.PageIdentity{FileID: 2, PageID: 1}),
	)
}
