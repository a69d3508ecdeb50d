package bufferpool

import (
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Blackdeer1524/pagecache/src/pkg/assert"
	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/storage/index"
	"github.com/Blackdeer1524/pagecache/src/storage/page"
)

// PageFile is the page store the buffer manager reads pages from and
// writes them back to. ID is the identity of the file: frames and the page
// table key on it, so it must stay the same for the lifetime of the file.
type PageFile interface {
	ID() common.FileID
	Name() string
	ReadPage(pageNo common.PageID) (page.Page, error)
	WritePage(p *page.Page) error
	AllocatePage() (page.Page, error)
	DeletePage(pageNo common.PageID) error
}

type BufferPool interface {
	FetchPage(file PageFile, pageNo common.PageID) (*PageHandle, error)
	ReleasePage(file PageFile, pageNo common.PageID, dirty bool) error
	AllocatePage(file PageFile) (common.PageID, *PageHandle, error)
	DisposePage(file PageFile, pageNo common.PageID) error
	FlushFile(file PageFile) error
	Describe() Snapshot
	Stats() Stats
	Close() error
}

var (
	_ BufferPool = &Manager{}
	_ BufferPool = &Locked{}
)

// Manager caches pages of page files in a fixed number of frames and
// replaces them with the clock algorithm.
//
// Manager does no locking. Every method must run to completion before the
// next one starts; callers that share a Manager between goroutines wrap it
// with NewLocked.
type Manager struct {
	numFrames uint64
	descs     []frameDesc
	pool      []page.Page
	pageTable *index.PageTable
	clockHand common.FrameID

	lastGeneration uint64
	closed         bool

	log   *zap.Logger
	stats *stats
}

type Option func(*options)

type options struct {
	log   *zap.Logger
	meter metric.Meter
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMeter mirrors the manager's counters to OpenTelemetry.
func WithMeter(meter metric.Meter) Option {
	return func(o *options) {
		o.meter = meter
	}
}

func New(numFrames uint64, opts ...Option) *Manager {
	assert.Assert(numFrames > 0, "pool size must be greater than zero")

	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Manager{
		numFrames: numFrames,
		descs:     make([]frameDesc, numFrames),
		pool:      make([]page.Page, numFrames),
		pageTable: index.NewPageTable(int(numFrames)),
		// the first advance moves the hand to frame 0
		clockHand: common.FrameID(numFrames - 1),
		log:       o.log,
		stats:     newStats(o.meter, o.log),
	}
}

// FetchPage pins the page and returns a handle to its frame, reading the
// page from file if it is not cached.
func (m *Manager) FetchPage(file PageFile, pageNo common.PageID) (*PageHandle, error) {
	if m.closed {
		return nil, ErrClosed
	}

	if frameID, ok := m.lookup(file, pageNo); ok {
		desc := &m.descs[frameID]
		desc.refBit = true
		desc.pinCount++
		m.stats.hit()

		return m.newHandle(file, pageNo, frameID), nil
	}

	m.stats.miss()

	frameID, err := m.allocFrame()
	if err != nil {
		return nil, err
	}

	p, err := file.ReadPage(pageNo)
	if err != nil {
		// the frame is detached from its previous page already
		m.descs[frameID].clear()
		return nil, errors.Wrapf(err, "read page %d of %s", pageNo, file.Name())
	}

	m.pool[frameID] = p
	m.install(file, pageNo, frameID)

	return m.newHandle(file, pageNo, frameID), nil
}

// ReleasePage drops one pin of the page. dirty marks the frame as modified;
// the mark stays until the page is written back.
//
// Releasing a page that is not cached is not an error.
func (m *Manager) ReleasePage(file PageFile, pageNo common.PageID, dirty bool) error {
	if m.closed {
		return ErrClosed
	}

	frameID, ok := m.lookup(file, pageNo)
	if !ok {
		return nil
	}

	desc := &m.descs[frameID]
	if desc.pinCount == 0 {
		return &PageNotPinnedError{
			FileName: desc.file.Name(),
			PageNo:   pageNo,
			Frame:    frameID,
		}
	}

	desc.pinCount--
	if dirty {
		desc.dirty = true
	}

	return nil
}

// AllocatePage creates a new page in file and pins it.
func (m *Manager) AllocatePage(file PageFile) (common.PageID, *PageHandle, error) {
	if m.closed {
		return 0, nil, ErrClosed
	}

	p, err := file.AllocatePage()
	if err != nil {
		return 0, nil, errors.Wrapf(err, "allocate page in %s", file.Name())
	}
	pageNo := p.PageNumber()

	frameID, err := m.allocFrame()
	if err != nil {
		return 0, nil, err
	}

	m.pool[frameID] = p
	m.install(file, pageNo, frameID)
	m.stats.allocated()

	return pageNo, m.newHandle(file, pageNo, frameID), nil
}

// DisposePage drops the page from the pool, whatever its pin count and
// dirtiness, and deletes it from file. The page does not have to be
// cached. Outstanding handles of the page become stale.
func (m *Manager) DisposePage(file PageFile, pageNo common.PageID) error {
	if m.closed {
		return ErrClosed
	}

	if frameID, ok := m.lookup(file, pageNo); ok {
		assert.NoError(m.pageTable.Remove(file.ID(), pageNo))
		m.descs[frameID].clear()
	}

	if err := file.DeletePage(pageNo); err != nil {
		return errors.Wrapf(err, "delete page %d of %s", pageNo, file.Name())
	}
	m.stats.disposed()

	return nil
}

// FlushFile writes back the dirty pages of file and drops all its pages
// from the pool. Frames are processed in ascending order and processing
// stops at the first pinned or inconsistent frame; frames before it stay
// flushed and dropped.
func (m *Manager) FlushFile(file PageFile) error {
	if m.closed {
		return ErrClosed
	}

	return m.flushFile(file)
}

func (m *Manager) flushFile(file PageFile) error {
	for i := range m.descs {
		frameID := common.FrameID(i)
		desc := &m.descs[i]

		if !desc.ownedBy(file) {
			continue
		}

		if desc.pinCount > 0 {
			return &PagePinnedError{
				FileName: file.Name(),
				PageNo:   desc.pageNo,
				Frame:    frameID,
			}
		}

		if !desc.valid {
			return &BadBufferError{
				Frame:  frameID,
				Dirty:  desc.dirty,
				Valid:  desc.valid,
				RefBit: desc.refBit,
			}
		}

		if desc.dirty {
			if err := m.writeBack(frameID); err != nil {
				return err
			}
		}

		if err := m.pageTable.Remove(file.ID(), desc.pageNo); err != nil {
			m.log.Warn(
				"flushed page was missing from the page table",
				zap.Stringer("page", desc.ident()),
				zap.Uint64("frame", uint64(frameID)),
			)
		}
		desc.clear()
	}

	return nil
}

// Close writes back every dirty page and releases the pool. It never
// stops half way: all write-back failures are collected into the returned
// error. Pages that are still pinned are written back as well.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}

	var errs error
	attempted := make(map[common.FileID]struct{})
	for i := range m.descs {
		desc := &m.descs[i]
		if !desc.valid || !desc.dirty {
			continue
		}

		file := desc.file
		if _, ok := attempted[file.ID()]; ok {
			continue
		}
		attempted[file.ID()] = struct{}{}

		if err := m.flushFile(file); err != nil {
			errs = multierr.Append(errs, err)
			errs = multierr.Append(errs, m.writeBackAll(file))
		}
	}

	if errs != nil {
		m.log.Error("failed to write back pages on close", zap.Error(errs))
	}

	m.closed = true
	m.descs = nil
	m.pool = nil
	m.pageTable = nil

	return errs
}

// writeBackAll writes back the remaining dirty frames of file without
// dropping them.
func (m *Manager) writeBackAll(file PageFile) error {
	var errs error
	for i := range m.descs {
		desc := &m.descs[i]
		if desc.ownedBy(file) && desc.valid && desc.dirty {
			errs = multierr.Append(errs, m.writeBack(common.FrameID(i)))
		}
	}

	return errs
}

func (m *Manager) writeBack(frameID common.FrameID) error {
	desc := &m.descs[frameID]

	if err := desc.file.WritePage(&m.pool[frameID]); err != nil {
		return errors.Wrapf(
			err,
			"write back page %d of %s from frame %d",
			desc.pageNo,
			desc.file.Name(),
			frameID,
		)
	}

	desc.dirty = false
	m.stats.wroteBack()

	return nil
}

func (m *Manager) lookup(file PageFile, pageNo common.PageID) (common.FrameID, bool) {
	frame := m.pageTable.Lookup(file.ID(), pageNo)
	return frame.Get()
}

// install maps the page to the frame and pins it once.
func (m *Manager) install(file PageFile, pageNo common.PageID, frameID common.FrameID) {
	assert.NoError(m.pageTable.Insert(file.ID(), pageNo, frameID))

	m.lastGeneration++
	m.descs[frameID].set(file, pageNo, m.lastGeneration)
}
