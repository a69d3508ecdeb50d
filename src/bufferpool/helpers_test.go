package bufferpool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/storage/page"
)

// memFile is an in-memory PageFile that records the calls it receives.
type memFile struct {
	id   common.FileID
	name string

	pages    map[common.PageID]page.Page
	lastPage common.PageID

	reads   []common.PageID
	writes  []common.PageID
	deletes []common.PageID
}

var _ PageFile = &memFile{}

// newMemFile creates a file with pages 1..numPages. The first byte of every
// page is its number.
func newMemFile(id common.FileID, numPages int) *memFile {
	f := &memFile{
		id:    id,
		name:  fmt.Sprintf("file-%d", id),
		pages: make(map[common.PageID]page.Page),
	}

	for range numPages {
		_, _ = f.AllocatePage()
	}

	return f
}

func (f *memFile) ID() common.FileID {
	return f.id
}

func (f *memFile) Name() string {
	return f.name
}

func (f *memFile) ReadPage(pageNo common.PageID) (page.Page, error) {
	p, ok := f.pages[pageNo]
	if !ok {
		return page.Page{}, fmt.Errorf("page %d does not exist", pageNo)
	}
	f.reads = append(f.reads, pageNo)

	return p, nil
}

func (f *memFile) WritePage(p *page.Page) error {
	if _, ok := f.pages[p.PageNumber()]; !ok {
		return fmt.Errorf("page %d does not exist", p.PageNumber())
	}
	f.writes = append(f.writes, p.PageNumber())
	f.pages[p.PageNumber()] = *p

	return nil
}

func (f *memFile) AllocatePage() (page.Page, error) {
	f.lastPage++

	p := page.New(f.lastPage)
	p.SetData([]byte{byte(f.lastPage)})
	f.pages[f.lastPage] = p

	return p, nil
}

func (f *memFile) DeletePage(pageNo common.PageID) error {
	f.deletes = append(f.deletes, pageNo)
	if _, ok := f.pages[pageNo]; !ok {
		return fmt.Errorf("page %d does not exist", pageNo)
	}
	delete(f.pages, pageNo)

	return nil
}

func (f *memFile) writesOf(pageNo common.PageID) int {
	n := 0
	for _, w := range f.writes {
		if w == pageNo {
			n++
		}
	}

	return n
}

func fetch(t *testing.T, m *Manager, f PageFile, pageNo common.PageID) *PageHandle {
	t.Helper()

	h, err := m.FetchPage(f, pageNo)
	require.NoError(t, err)
	require.Equal(t, pageNo, h.PageNo())

	return h
}

func frameOf(t *testing.T, m *Manager, f PageFile, pageNo common.PageID) common.FrameID {
	t.Helper()

	frame, ok := m.lookup(f, pageNo)
	require.True(t, ok, "page %d of %s is not cached", pageNo, f.Name())

	return frame
}

func isCached(m *Manager, f PageFile, pageNo common.PageID) bool {
	_, ok := m.lookup(f, pageNo)
	return ok
}

// checkConsistency verifies that the page table and the frame table
// describe the same set of pages.
func checkConsistency(t *testing.T, m *Manager) {
	t.Helper()

	valid := 0
	for i := range m.descs {
		desc := &m.descs[i]
		if !desc.valid {
			require.Nil(t, desc.file, "free frame %d has an owner", i)
			continue
		}
		valid++

		require.GreaterOrEqual(t, desc.pinCount, 0)
		require.Equal(t, desc.pageNo, m.pool[i].PageNumber(), "frame %d", i)

		frame, ok := m.lookup(desc.file, desc.pageNo)
		require.True(t, ok, "valid frame %d is not in the page table", i)
		require.Equal(t, common.FrameID(i), frame)
	}

	require.Equal(t, valid, m.pageTable.Len())
}
