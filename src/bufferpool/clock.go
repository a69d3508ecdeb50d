package bufferpool

import (
	"go.uber.org/zap"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
)

func (m *Manager) advanceClock() {
	m.clockHand = common.FrameID((uint64(m.clockHand) + 1) % m.numFrames)
}

// allocFrame picks a frame for a new page with the clock algorithm.
//
// A frame without a valid page is taken as is. A valid frame with its
// reference bit set loses the bit and survives this sweep. An unpinned
// frame without the bit is the victim: it is written back if dirty and
// removed from the page table. The victim keeps its descriptor; the caller
// overwrites it right away.
//
// ErrBufferExceeded is returned after numFrames pinned frames in a row,
// i.e. once the hand has seen every frame pinned.
func (m *Manager) allocFrame() (common.FrameID, error) {
	pinnedInARow := uint64(0)

	m.advanceClock()
	for {
		frameID := m.clockHand
		desc := &m.descs[frameID]

		switch {
		case !desc.valid:
			return frameID, nil
		case desc.refBit:
			desc.refBit = false
			pinnedInARow = 0
		case desc.pinCount == 0:
			if desc.dirty {
				if err := m.writeBack(frameID); err != nil {
					return 0, err
				}
			}

			// the victim may be missing from the page table, that is fine
			_ = m.pageTable.Remove(desc.file.ID(), desc.pageNo)

			m.stats.evicted()
			m.log.Debug(
				"evicted page",
				zap.Stringer("page", desc.ident()),
				zap.Uint64("frame", uint64(frameID)),
			)

			return frameID, nil
		default:
			pinnedInARow++
			if pinnedInARow == m.numFrames {
				return 0, ErrBufferExceeded
			}
		}

		m.advanceClock()
	}
}
