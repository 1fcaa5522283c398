package log

import (
	"github.com/TheZeroSlave/zapsentry"
	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"path/filepath"
)

func NewLogger(path string, debug bool, sentryDsn string) {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(), zapcore.AddSync(colorable.NewColorableStdout()), level),
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Fatal(err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal(err)
		}
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	defer logger.Sync()

	if sentryDsn != "" {
		logger = modifyToSentryLogger(logger, sentryDsn)
	}

	zap.ReplaceGlobals(logger)
}

func encoderConfig() zapcore.EncoderConfig {
	pe := zap.NewProductionEncoderConfig()
	pe.EncodeTime = zapcore.ISO8601TimeEncoder
	pe.MessageKey = "message"
	pe.TimeKey = "time"

	return pe
}

func fileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(encoderConfig())
}

func consoleEncoder() zapcore.Encoder {
	pe := encoderConfig()
	pe.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewConsoleEncoder(pe)
}

func modifyToSentryLogger(log *zap.Logger, DSN string) *zap.Logger {
	cfg := zapsentry.Configuration{
		Level:             zapcore.ErrorLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   zapcore.InfoLevel,
		Tags: map[string]string{
			"component": "market",
		},
	}
	core, err := zapsentry.NewCore(cfg, zapsentry.NewSentryClientFromDSN(DSN))

	log = log.With(zapsentry.NewScope())

	// a failed core is a noop core, safe to attach
	if err != nil {
		log.Warn("failed to init sentry core", zap.Error(err))
	}
	return zapsentry.AttachCoreToLogger(core, log)
}
