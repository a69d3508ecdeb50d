package disk

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/go-faster/errors"
	"github.com/spf13/afero"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/storage/page"
)

var (
	ErrFileExists   = errors.New("file already exists")
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPage  = errors.New("invalid page")
	ErrBadHeader    = errors.New("not a page file")
)

const (
	headerPageID = common.PageID(0)
	// noPage terminates the free list; page 0 is the header and is never free.
	noPage = common.PageID(0)
)

var magic = [4]byte{'P', 'G', 'C', 'F'}

type fileHeader struct {
	Magic    [4]byte
	NumPages common.PageID
	FreeHead common.PageID
}

var lastFileID atomic.Uint64

// File is a page file. Page 0 holds the header, data pages start at 1.
// Deleted pages are chained into a free list through their first eight
// bytes and are reused by AllocatePage.
type File struct {
	fs   afero.Fs
	path string
	id   common.FileID
	f    afero.File

	hdr  fileHeader
	free map[common.PageID]struct{}
}

func newFile(fs afero.Fs, path string, f afero.File) *File {
	return &File{
		fs:   fs,
		path: path,
		id:   common.FileID(lastFileID.Add(1)),
		f:    f,
		free: make(map[common.PageID]struct{}),
	}
}

// Create makes a new empty page file. It fails if the file exists.
func Create(fs afero.Fs, path string) (*File, error) {
	path = filepath.Clean(path)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if exists {
		return nil, errors.Wrap(ErrFileExists, path)
	}

	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}

	file := newFile(fs, path, f)
	file.hdr = fileHeader{Magic: magic, NumPages: 1, FreeHead: noPage}

	if err := file.writeHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return file, nil
}

// Open opens an existing page file.
func Open(fs afero.Fs, path string) (*File, error) {
	path = filepath.Clean(path)

	f, err := fs.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}

	file := newFile(fs, path, f)
	if err := file.readHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := file.loadFreeList(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return file, nil
}

// Remove deletes the page file from fs. The file must be closed.
func Remove(fs afero.Fs, path string) error {
	path = filepath.Clean(path)

	if err := fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(ErrFileNotFound, path)
		}
		return errors.Wrapf(err, "remove %s", path)
	}

	return nil
}

// ID identifies this open handle. It is unique within the process.
func (f *File) ID() common.FileID {
	return f.id
}

func (f *File) Name() string {
	return f.path
}

// PageCount returns the number of live data pages.
func (f *File) PageCount() int {
	return int(f.hdr.NumPages) - 1 - len(f.free)
}

// Pages lists live data pages in ascending order.
func (f *File) Pages() []common.PageID {
	res := make([]common.PageID, 0, f.PageCount())
	for p := headerPageID + 1; p < f.hdr.NumPages; p++ {
		if _, ok := f.free[p]; !ok {
			res = append(res, p)
		}
	}

	return res
}

func (f *File) ReadPage(pageNo common.PageID) (page.Page, error) {
	if err := f.checkLive(pageNo); err != nil {
		return page.Page{}, err
	}

	p := page.New(pageNo)
	if err := f.readAt(p.GetData(), pageNo); err != nil {
		return page.Page{}, errors.Wrapf(err, "read page %d of %s", pageNo, f.path)
	}

	return p, nil
}

func (f *File) WritePage(p *page.Page) error {
	pageNo := p.PageNumber()
	if err := f.checkLive(pageNo); err != nil {
		return err
	}

	if err := f.writeAt(p.GetData(), pageNo); err != nil {
		return errors.Wrapf(err, "write page %d of %s", pageNo, f.path)
	}

	return nil
}

// AllocatePage returns a zeroed page, reusing a deleted page when there is
// one.
func (f *File) AllocatePage() (page.Page, error) {
	if f.hdr.FreeHead != noPage {
		pageNo := f.hdr.FreeHead

		var next [8]byte
		if err := f.readAt(next[:], pageNo); err != nil {
			return page.Page{}, errors.Wrapf(err, "read free page %d of %s", pageNo, f.path)
		}

		p := page.New(pageNo)
		if err := f.writeAt(p.GetData(), pageNo); err != nil {
			return page.Page{}, errors.Wrapf(err, "reset page %d of %s", pageNo, f.path)
		}

		f.hdr.FreeHead = common.PageID(binary.BigEndian.Uint64(next[:]))
		delete(f.free, pageNo)

		return p, f.writeHeader()
	}

	pageNo := f.hdr.NumPages
	p := page.New(pageNo)
	if err := f.writeAt(p.GetData(), pageNo); err != nil {
		return page.Page{}, errors.Wrapf(err, "extend %s with page %d", f.path, pageNo)
	}

	f.hdr.NumPages++

	return p, f.writeHeader()
}

// DeletePage puts the page on the free list.
func (f *File) DeletePage(pageNo common.PageID) error {
	if err := f.checkLive(pageNo); err != nil {
		return err
	}

	var next [8]byte
	binary.BigEndian.PutUint64(next[:], uint64(f.hdr.FreeHead))
	if err := f.writeAt(next[:], pageNo); err != nil {
		return errors.Wrapf(err, "free page %d of %s", pageNo, f.path)
	}

	f.hdr.FreeHead = pageNo
	f.free[pageNo] = struct{}{}

	return f.writeHeader()
}

func (f *File) Close() error {
	if err := f.f.Sync(); err != nil {
		_ = f.f.Close()
		return errors.Wrapf(err, "sync %s", f.path)
	}

	return f.f.Close()
}

func (f *File) checkLive(pageNo common.PageID) error {
	if pageNo == headerPageID || pageNo >= f.hdr.NumPages {
		return errors.Wrapf(ErrInvalidPage, "page %d of %s", pageNo, f.path)
	}
	if _, ok := f.free[pageNo]; ok {
		return errors.Wrapf(ErrInvalidPage, "page %d of %s is deleted", pageNo, f.path)
	}

	return nil
}

func (f *File) loadFreeList() error {
	seen := 0
	for p := f.hdr.FreeHead; p != noPage; seen++ {
		if p >= f.hdr.NumPages || seen >= int(f.hdr.NumPages) {
			return errors.Wrapf(ErrBadHeader, "corrupt free list in %s", f.path)
		}
		f.free[p] = struct{}{}

		var next [8]byte
		if err := f.readAt(next[:], p); err != nil {
			return errors.Wrapf(err, "read free list of %s", f.path)
		}
		p = common.PageID(binary.BigEndian.Uint64(next[:]))
	}

	return nil
}

func (f *File) writeHeader() error {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.BigEndian, f.hdr)

	if err := f.writeAt(buf.Bytes(), headerPageID); err != nil {
		return errors.Wrapf(err, "write header of %s", f.path)
	}

	return nil
}

func (f *File) readHeader() error {
	raw := make([]byte, binary.Size(fileHeader{}))
	if err := f.readAt(raw, headerPageID); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errors.Wrap(ErrBadHeader, f.path)
		}
		return errors.Wrapf(err, "read header of %s", f.path)
	}

	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, &f.hdr); err != nil {
		return errors.Wrapf(err, "decode header of %s", f.path)
	}

	if f.hdr.Magic != magic || f.hdr.NumPages == 0 {
		return errors.Wrap(ErrBadHeader, f.path)
	}

	return nil
}

func (f *File) readAt(dst []byte, pageNo common.PageID) error {
	//nolint:gosec
	_, err := f.f.ReadAt(dst, int64(pageNo)*page.PageSize)
	return err
}

func (f *File) writeAt(src []byte, pageNo common.PageID) error {
	//nolint:gosec
	_, err := f.f.WriteAt(src, int64(pageNo)*page.PageSize)
	return err
}
