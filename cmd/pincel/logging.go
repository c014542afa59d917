package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

const (
	logDir      = "logs"
	logFileName = "pincel.log"
	maxLogSize  = 10 * 1024 * 1024
)

var (
	colorFormat = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{module} %{color:bold}%{message} %{color:reset}%{color}@%{shortfile} #%{level}%{color:reset}`,
	)
	plainFormat = logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05.000} %{module} %{level:.4s} %{message} @%{shortfile}`,
	)
)

// levelFor maps the verbosity count onto a logging level
func levelFor(verbosity int) logging.Level {
	switch {
	case verbosity <= 0:
		return logging.WARNING
	case verbosity == 1:
		return logging.INFO
	default:
		return logging.DEBUG
	}
}

// setupLogging installs the process log backend
// An empty path logs to stderr and returns a nil file. Otherwise the file is
// rotated when it exceeds maxLogSize and opened for append; the tty stays
// untouched, which the terminal backend needs
func setupLogging(verbosity int, path string) (*os.File, error) {
	var (
		out    io.Writer = os.Stderr
		format           = colorFormat
		file   *os.File
	)

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
		if err := rotateLog(path); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		out, format, file = f, plainFormat, f
	}

	backend := logging.NewBackendFormatter(logging.NewLogBackend(out, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(levelFor(verbosity), "")
	logging.SetBackend(leveled)
	return file, nil
}

// rotateLog renames path to a timestamped sibling when it is too large
func rotateLog(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	return errors.Wrap(os.Rename(path, rotated), "rotate log")
}
