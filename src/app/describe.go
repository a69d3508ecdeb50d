package app

import (
	"context"
	"io"
	"os"

	"github.com/go-faster/errors"

	"github.com/Blackdeer1524/pagecache/src/bufferpool"
)

// DescribeEntrypoint loads the first pages of an existing page file into
// the pool and prints the frame table.
type DescribeEntrypoint struct {
	pagedApp

	Out io.Writer
}

func (e *DescribeEntrypoint) Init(_ context.Context) error {
	if e.Out == nil {
		e.Out = os.Stdout
	}

	return e.init(false)
}

func (e *DescribeEntrypoint) Run(_ context.Context) error {
	pages := e.file.Pages()
	if uint64(len(pages)) > e.cfg.NumFrames {
		pages = pages[:e.cfg.NumFrames]
	}

	for _, pageNo := range pages {
		h, err := e.pool.FetchPage(e.file, pageNo)
		if err != nil {
			return errors.Wrapf(err, "load page %d", pageNo)
		}
		if err := h.Release(false); err != nil {
			return err
		}
	}

	return bufferpool.PrintSelf(e.Out, e.pool)
}

func (e *DescribeEntrypoint) Close() error {
	return e.close()
}
