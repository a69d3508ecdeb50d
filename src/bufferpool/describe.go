package bufferpool

import (
	"fmt"
	"io"
	"strings"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
)

type FrameInfo struct {
	Frame    common.FrameID
	FileName string
	FileID   common.FileID
	PageNo   common.PageID
	PinCount int
	Dirty    bool
	Valid    bool
	RefBit   bool
}

func (f FrameInfo) String() string {
	file := "NULL"
	if f.FileID != common.NilFileID {
		file = f.FileName
	}

	return fmt.Sprintf(
		"FrameNo:%d file:%s pageNo:%d valid:%t pinCnt:%d dirty:%t refbit:%t",
		f.Frame, file, f.PageNo, f.Valid, f.PinCount, f.Dirty, f.RefBit,
	)
}

// Snapshot is a copy of the frame table.
type Snapshot struct {
	Frames      []FrameInfo
	ValidFrames int
}

func (s Snapshot) String() string {
	var sb strings.Builder
	for _, f := range s.Frames {
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Total Number of Valid Frames:%d\n", s.ValidFrames)

	return sb.String()
}

// Describe copies the frame table. It does not touch any frame.
func (m *Manager) Describe() Snapshot {
	snap := Snapshot{Frames: make([]FrameInfo, 0, len(m.descs))}

	for i := range m.descs {
		desc := &m.descs[i]

		info := FrameInfo{
			Frame:    common.FrameID(i),
			PageNo:   desc.pageNo,
			PinCount: desc.pinCount,
			Dirty:    desc.dirty,
			Valid:    desc.valid,
			RefBit:   desc.refBit,
		}
		if desc.file != nil {
			info.FileName = desc.file.Name()
			info.FileID = desc.file.ID()
		}
		if desc.valid {
			snap.ValidFrames++
		}

		snap.Frames = append(snap.Frames, info)
	}

	return snap
}

func PrintSelf(w io.Writer, pool BufferPool) error {
	_, err := io.WriteString(w, pool.Describe().String())
	return err
}
