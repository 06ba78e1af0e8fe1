// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

type logConfig struct {
	Name      string
	Directory string
	Level     logging.Level
	// Console mirrors the log to stderr. Plan runs keep stdout and stderr
	// free for step responses.
	Console bool
}

// newLogger writes JSON logs to a rotated file under [cfg.Directory].
func newLogger(cfg logConfig) logging.Logger {
	var consoleWriter io.WriteCloser = nopWriteCloser{io.Discard}
	if cfg.Console {
		consoleWriter = os.Stderr
	}
	consoleCore := logging.NewWrappedCore(cfg.Level, consoleWriter, logging.Colors.ConsoleEncoder())
	consoleCore.WriterDisabled = !cfg.Console

	rw := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Directory, cfg.Name+".log"),
		MaxSize:    8, // megabytes
		MaxAge:     7, // days
		MaxBackups: 4, // files
		Compress:   true,
	}
	fileCore := logging.NewWrappedCore(cfg.Level, rw, logging.JSON.FileEncoder())
	return logging.NewLogger(logging.JSON.WrapPrefix(cfg.Name), consoleCore, fileCore)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
