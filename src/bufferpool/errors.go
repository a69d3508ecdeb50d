package bufferpool

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
)

var (
	// ErrBufferExceeded is returned when every frame is pinned and no page
	// can be evicted.
	ErrBufferExceeded = errors.New("buffer exceeded: all frames are pinned")
	ErrPageNotPinned  = errors.New("page is not pinned")
	ErrPagePinned     = errors.New("page is pinned")
	// ErrBadBuffer reports a frame that is assigned to a file but holds
	// no valid page.
	ErrBadBuffer = errors.New("bad buffer")

	ErrClosed         = errors.New("buffer manager is closed")
	ErrHandleReleased = errors.New("page handle is already released")
	ErrStaleHandle    = errors.New("page handle outlived its page")
)

type PageNotPinnedError struct {
	FileName string
	PageNo   common.PageID
	Frame    common.FrameID
}

func (e *PageNotPinnedError) Error() string {
	return fmt.Sprintf(
		"%v: file %q, page %d, frame %d",
		ErrPageNotPinned, e.FileName, e.PageNo, e.Frame,
	)
}

func (e *PageNotPinnedError) Is(target error) bool {
	return target == ErrPageNotPinned
}

type PagePinnedError struct {
	FileName string
	PageNo   common.PageID
	Frame    common.FrameID
}

func (e *PagePinnedError) Error() string {
	return fmt.Sprintf(
		"%v: file %q, page %d, frame %d",
		ErrPagePinned, e.FileName, e.PageNo, e.Frame,
	)
}

func (e *PagePinnedError) Is(target error) bool {
	return target == ErrPagePinned
}

type BadBufferError struct {
	Frame  common.FrameID
	Dirty  bool
	Valid  bool
	RefBit bool
}

func (e *BadBufferError) Error() string {
	return fmt.Sprintf(
		"%v: frame %d, dirty %t, valid %t, refbit %t",
		ErrBadBuffer, e.Frame, e.Dirty, e.Valid, e.RefBit,
	)
}

func (e *BadBufferError) Is(target error) bool {
	return target == ErrBadBuffer
}

// StaleHandleError is returned when a handle is released after its page
// left the pool through DisposePage.
type StaleHandleError struct {
	FileName string
	PageNo   common.PageID
	Frame    common.FrameID
}

func (e *StaleHandleError) Error() string {
	return fmt.Sprintf(
		"%v: file %q, page %d, frame %d",
		ErrStaleHandle, e.FileName, e.PageNo, e.Frame,
	)
}

func (e *StaleHandleError) Is(target error) bool {
	return target == ErrStaleHandle
}
