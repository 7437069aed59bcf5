package vkquad

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

// Logger groups the info, warning and error logs shared by every component
// of a render instance.
type Logger struct {
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	files []*os.File
}

func newLogger(info, warn, fail io.Writer) *Logger {
	return &Logger{
		Info:  log.New(info, "INFO: ", logFlags),
		Warn:  log.New(warn, "WARNING: ", logFlags),
		Error: log.New(fail, "ERROR: ", logFlags),
	}
}

// NewStderrLogger logs everything to standard error.
func NewStderrLogger() *Logger {
	return newLogger(os.Stderr, os.Stderr, os.Stderr)
}

// NewDiscardLogger drops all output.
func NewDiscardLogger() *Logger {
	return newLogger(io.Discard, io.Discard, io.Discard)
}

// NewFileLogger appends to info_log.txt, warn_log.txt and error_log.txt in dir.
// Errors are mirrored to standard error.
func NewFileLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating log dir %s", dir)
	}
	var files []*os.File
	open := func(name string) (*os.File, error) {
		file, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", name)
		}
		files = append(files, file)
		return file, nil
	}
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	info_file, err := open("info_log.txt")
	if err != nil {
		return nil, err
	}
	warn_file, err := open("warn_log.txt")
	if err != nil {
		closeAll()
		return nil, err
	}
	error_file, err := open("error_log.txt")
	if err != nil {
		closeAll()
		return nil, err
	}

	l := newLogger(info_file, warn_file, io.MultiWriter(error_file, os.Stderr))
	l.files = files
	return l, nil
}

// Close releases any log files. Loggers that write to standard streams
// have nothing to release.
func (l *Logger) Close() error {
	var err error
	for _, f := range l.files {
		err = errors.CombineErrors(err, f.Close())
	}
	l.files = nil
	return err
}
