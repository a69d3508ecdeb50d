package bufferpool

import "github.com/Blackdeer1524/pagecache/src/pkg/common"

// frameDesc is the frame table entry of one frame. file is nil while the
// frame is free.
type frameDesc struct {
	file     PageFile
	pageNo   common.PageID
	pinCount int
	dirty    bool
	refBit   bool
	valid    bool

	// generation changes every time the frame receives a page, so a handle
	// can tell that its frame was handed to someone else.
	generation uint64
}

func (d *frameDesc) set(file PageFile, pageNo common.PageID, generation uint64) {
	d.file = file
	d.pageNo = pageNo
	d.pinCount = 1
	d.dirty = false
	d.refBit = true
	d.valid = true
	d.generation = generation
}

func (d *frameDesc) clear() {
	d.file = nil
	d.pageNo = 0
	d.pinCount = 0
	d.dirty = false
	d.refBit = false
	d.valid = false
}

func (d *frameDesc) ownedBy(file PageFile) bool {
	return d.file != nil && d.file.ID() == file.ID()
}

func (d *frameDesc) ident() common.PageIdentity {
	return common.PageIdentity{FileID: d.file.ID(), PageID: d.pageNo}
}
