// Package log builds the zap logger installed as the process global.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	rotate "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qlab/conf"
)

// FilePattern is the strftime pattern of rotated log files inside LogDir.
const FilePattern = "qlab-%Y-%m-%d.log"

// NewLogger returns a logger writing to stdout and, when enabled, to a daily
// rotated file.
func NewLogger(c *conf.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if c.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(ec)
	}
	level := zap.NewAtomicLevelAt(parseLevel(c.LogLevel))

	cores := []zapcore.Core{}
	if c.EnableFileLog {
		rotator, err := makeRotator(c.LogDir, c.LogRotationMaxDays)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}
	if !c.DisableStdoutLog {
		// stdout carries command output, so logs go to stderr
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.WarnLevel
	}
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, errors.Wrapf(err, "log dir %s", dirPath)
	}
	if !info.IsDir() || info.Mode().Perm()&0o200 == 0 {
		return nil, errors.Errorf("%s is not a writable directory", dirPath)
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, FilePattern),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(24*time.Hour))
	if err != nil {
		return nil, errors.Wrap(err, "create rotator")
	}
	return rotator, nil
}

// Setup builds the logger, installs it as the zap global and returns it so the
// caller can Sync on exit.
func Setup(c *conf.Conf) (*zap.Logger, error) {
	logger, err := NewLogger(c)
	if err != nil {
		return nil, errors.Wrap(err, "setup logger")
	}
	zap.ReplaceGlobals(logger)
	zap.L().Debug(fmt.Sprintf("DevMode is %t", c.DevMode))
	zap.L().Debug(fmt.Sprintf("Log level is %s", parseLevel(c.LogLevel)))
	return logger, nil
}
