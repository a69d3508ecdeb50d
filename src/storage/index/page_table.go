package index

import (
	"github.com/go-faster/errors"

	"github.com/Blackdeer1524/pagecache/src/pkg/assert"
	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/pkg/optional"
)

var (
	ErrHashNotFound       = errors.New("page is not in the page table")
	ErrHashAlreadyPresent = errors.New("page is already in the page table")
)

type bucketEntry struct {
	key   common.PageIdentity
	frame common.FrameID
	next  *bucketEntry
}

// PageTable maps (file, page number) to the frame holding the page.
// It is a chained hash table with a fixed number of buckets and is not
// safe for concurrent use.
type PageTable struct {
	buckets []*bucketEntry
	hasher  keyHasher
	size    int
}

// BucketCount returns the number of buckets used for a pool of
// numFrames frames: 1.2 times the frame count, plus one.
func BucketCount(numFrames int) int {
	return numFrames*6/5 + 1
}

func NewPageTable(numFrames int) *PageTable {
	assert.Assert(numFrames > 0, "number of frames must be greater than zero")

	return &PageTable{
		buckets: make([]*bucketEntry, BucketCount(numFrames)),
		hasher:  newKeyHasher(DefaultHashSeed),
	}
}

func (t *PageTable) bucketOf(key common.PageIdentity) int {
	return int(t.hasher.sum(key) % uint64(len(t.buckets)))
}

// Insert records that the page lives in frame. A page may be mapped only
// once.
func (t *PageTable) Insert(
	fileID common.FileID,
	pageID common.PageID,
	frame common.FrameID,
) error {
	key := common.PageIdentity{FileID: fileID, PageID: pageID}
	b := t.bucketOf(key)

	for e := t.buckets[b]; e != nil; e = e.next {
		if e.key == key {
			return errors.Wrapf(ErrHashAlreadyPresent, "%v in frame %d", key, e.frame)
		}
	}

	t.buckets[b] = &bucketEntry{key: key, frame: frame, next: t.buckets[b]}
	t.size++

	return nil
}

// Lookup returns the frame of the page, or None if it is not cached.
func (t *PageTable) Lookup(
	fileID common.FileID,
	pageID common.PageID,
) optional.Optional[common.FrameID] {
	key := common.PageIdentity{FileID: fileID, PageID: pageID}

	for e := t.buckets[t.bucketOf(key)]; e != nil; e = e.next {
		if e.key == key {
			return optional.Some(e.frame)
		}
	}

	return optional.None[common.FrameID]()
}

func (t *PageTable) Remove(fileID common.FileID, pageID common.PageID) error {
	key := common.PageIdentity{FileID: fileID, PageID: pageID}
	b := t.bucketOf(key)

	var prev *bucketEntry
	for e := t.buckets[b]; e != nil; prev, e = e, e.next {
		if e.key != key {
			continue
		}

		if prev == nil {
			t.buckets[b] = e.next
		} else {
			prev.next = e.next
		}
		t.size--

		return nil
	}

	return errors.Wrapf(ErrHashNotFound, "%v", key)
}

func (t *PageTable) Len() int {
	return t.size
}
