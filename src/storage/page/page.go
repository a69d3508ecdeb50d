package page

import (
	"github.com/Blackdeer1524/pagecache/src/pkg/assert"
	"github.com/Blackdeer1524/pagecache/src/pkg/common"
)

const (
	sizeShift = 12
	PageSize  = 1 << sizeShift
)

// Page is the unit of transfer between a page file and the buffer pool.
// The number is not part of the data; it is implied by the page's
// position in its file.
type Page struct {
	number common.PageID
	data   [PageSize]byte
}

func New(number common.PageID) Page {
	return Page{number: number}
}

func (p *Page) PageNumber() common.PageID {
	return p.number
}

func (p *Page) GetData() []byte {
	return p.data[:]
}

// SetData overwrites the beginning of the page with d. The rest of the
// page is left untouched.
func (p *Page) SetData(d []byte) {
	assert.Assert(len(d) <= PageSize, "data of %d bytes does not fit a page", len(d))
	copy(p.data[:], d)
}
