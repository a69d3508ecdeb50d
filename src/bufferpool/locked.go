package bufferpool

import (
	"sync"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/storage/page"
)

// Locked serializes every operation of a Manager with one mutex. The page
// files are called with the mutex held, so they need no locking of their
// own.
//
// Handles returned by Locked release through it. Concurrent writers of the
// same page must coordinate among themselves: the mutex only guards the
// manager's bookkeeping.
type Locked struct {
	mu sync.Mutex
	m  *Manager
}

func NewLocked(m *Manager) *Locked {
	return &Locked{m: m}
}

func (l *Locked) FetchPage(file PageFile, pageNo common.PageID) (*PageHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, err := l.m.FetchPage(file, pageNo)
	if err != nil {
		return nil, err
	}
	h.owner = l

	return h, nil
}

func (l *Locked) ReleasePage(file PageFile, pageNo common.PageID, dirty bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.ReleasePage(file, pageNo, dirty)
}

func (l *Locked) AllocatePage(file PageFile) (common.PageID, *PageHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pageNo, h, err := l.m.AllocatePage(file)
	if err != nil {
		return 0, nil, err
	}
	h.owner = l

	return pageNo, h, nil
}

func (l *Locked) DisposePage(file PageFile, pageNo common.PageID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.DisposePage(file, pageNo)
}

func (l *Locked) FlushFile(file PageFile) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.FlushFile(file)
}

func (l *Locked) Describe() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.Describe()
}

func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.Stats()
}

func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.Close()
}

func (l *Locked) resolve(h *PageHandle) *page.Page {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.resolve(h)
}

func (l *Locked) releaseHandle(h *PageHandle, dirty bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.releaseHandle(h, dirty)
}
