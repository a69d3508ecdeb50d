package app

import (
	"github.com/go-faster/errors"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Blackdeer1524/pagecache/src/bufferpool"
	"github.com/Blackdeer1524/pagecache/src/cfg"
	"github.com/Blackdeer1524/pagecache/src/logger"
	"github.com/Blackdeer1524/pagecache/src/storage/disk"
)

const meterName = "github.com/Blackdeer1524/pagecache"

// pagedApp is the state shared by the entrypoints: configuration, logger,
// the page file and the pool in front of it.
type pagedApp struct {
	ConfigPath string
	// Fs defaults to the OS filesystem.
	Fs afero.Fs

	cfg  cfg.Config
	log  *zap.Logger
	file *disk.File
	pool *bufferpool.Locked
}

func (a *pagedApp) init(create bool) error {
	config, err := cfg.Load(a.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	a.cfg = config

	a.log, err = logger.New(a.cfg.Environment, a.cfg.LogLevel)
	if err != nil {
		return err
	}

	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}

	a.file, err = a.openFile(create)
	if err != nil {
		return err
	}

	a.pool = bufferpool.NewLocked(bufferpool.New(
		a.cfg.NumFrames,
		bufferpool.WithLogger(a.log.Named("bufferpool")),
		bufferpool.WithMeter(otel.GetMeterProvider().Meter(meterName)),
	))

	a.log.Info(
		"opened page file",
		zap.String("path", a.file.Name()),
		zap.Int("pages", a.file.PageCount()),
		zap.Uint64("frames", a.cfg.NumFrames),
	)

	return nil
}

func (a *pagedApp) openFile(create bool) (*disk.File, error) {
	path := a.cfg.FilePath()

	if create && a.cfg.Fresh {
		err := disk.Remove(a.Fs, path)
		if err != nil && !errors.Is(err, disk.ErrFileNotFound) {
			return nil, err
		}
	}

	f, err := disk.Open(a.Fs, path)
	if err == nil || !create || !errors.Is(err, disk.ErrFileNotFound) {
		return f, err
	}

	if err := a.Fs.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", a.cfg.DataDir)
	}

	return disk.Create(a.Fs, path)
}

// close writes back the pool before closing the file it caches.
func (a *pagedApp) close() error {
	var err error

	if a.pool != nil {
		err = multierr.Append(err, a.pool.Close())
	}
	if a.file != nil {
		err = multierr.Append(err, a.file.Close())
	}
	a.pool, a.file = nil, nil

	if a.log != nil {
		if err != nil {
			a.log.Error("failed to close", zap.Error(err))
		}
		// syncing stderr fails on some terminals
		_ = a.log.Sync()
	}

	return err
}
