package bufferpool

import (
	"github.com/Blackdeer1524/pagecache/src/pkg/assert"
	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/storage/page"
)

// noCopy makes go vet's copylocks check reject copies of a PageHandle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type handleOwner interface {
	releaseHandle(h *PageHandle, dirty bool) error
	resolve(h *PageHandle) *page.Page
}

// PageHandle is one pin of a cached page. The page must be released
// exactly once, either through Release or through the pool's ReleasePage.
type PageHandle struct {
	_ noCopy

	owner      handleOwner
	file       PageFile
	pageNo     common.PageID
	frame      common.FrameID
	generation uint64
	released   bool
}

func (m *Manager) newHandle(
	file PageFile,
	pageNo common.PageID,
	frameID common.FrameID,
) *PageHandle {
	return &PageHandle{
		owner:      m,
		file:       file,
		pageNo:     pageNo,
		frame:      frameID,
		generation: m.descs[frameID].generation,
	}
}

func (m *Manager) resolve(h *PageHandle) *page.Page {
	assert.Assert(!m.closed, "page %d used after the pool was closed", h.pageNo)

	assert.Assert(
		m.current(h),
		"stale handle: frame %d no longer holds page %d of %s",
		h.frame,
		h.pageNo,
		h.file.Name(),
	)

	return &m.pool[h.frame]
}

// current reports whether the handle's frame still holds the page it was
// pinned for.
func (m *Manager) current(h *PageHandle) bool {
	desc := &m.descs[h.frame]
	return desc.valid && desc.generation == h.generation
}

func (m *Manager) releaseHandle(h *PageHandle, dirty bool) error {
	if m.closed {
		return ErrClosed
	}

	// the page was disposed, its number may already belong to a new page
	if !m.current(h) {
		return &StaleHandleError{
			FileName: h.file.Name(),
			PageNo:   h.pageNo,
			Frame:    h.frame,
		}
	}

	return m.ReleasePage(h.file, h.pageNo, dirty)
}

// Page returns the pinned page. The page lives in the pool: it must not
// be used after the handle is released.
func (h *PageHandle) Page() *page.Page {
	assert.Assert(!h.released, "page %d used after release", h.pageNo)
	return h.owner.resolve(h)
}

func (h *PageHandle) PageNo() common.PageID {
	return h.pageNo
}

func (h *PageHandle) File() PageFile {
	return h.file
}

func (h *PageHandle) Frame() common.FrameID {
	return h.frame
}

// Release unpins the page. A handle can be released only once. Releasing
// a handle whose page was disposed meanwhile returns ErrStaleHandle and
// leaves the pool untouched.
func (h *PageHandle) Release(dirty bool) error {
	if h.released {
		return ErrHandleReleased
	}
	h.released = true

	return h.owner.releaseHandle(h, dirty)
}
