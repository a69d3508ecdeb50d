package logger

import (
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Blackdeer1524/pagecache/src/cfg"
)

// New builds a console logger in dev and a JSON logger in prod. An empty
// level keeps the environment's default.
func New(env cfg.Environment, level string) (*zap.Logger, error) {
	var zc zap.Config
	if env == cfg.EnvProd {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, errors.Wrap(err, "parse log level")
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, err := zc.Build(zap.Fields(zap.String("service", "bufmgr")))
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}

	return log, nil
}
