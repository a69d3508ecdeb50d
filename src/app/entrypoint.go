package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"
)

type Entrypoint interface {
	io.Closer
	Init(ctx context.Context) error
	Run(ctx context.Context) error
}

func Run(ctx context.Context, e Entrypoint) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := e.Init(ctx); err != nil {
		_ = e.Close()
		return errors.Wrap(err, "entrypoint init")
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		// a finished run shuts the app down as well
		defer cancel()
		return e.Run(egCtx)
	})

	// graceful shutdown
	eg.Go(func() error {
		<-egCtx.Done()
		return e.Close()
	})

	return eg.Wait()
}
