package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup sends the standard logger to stdout and, when path is set, to a
// rotating file as well. Callers tag their own lines ("[API] ..."), so no
// prefix is set. Close the result on shutdown.
func Setup(path string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if path == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(os.Stdout)
		log.Printf("[Logging] Cannot create log directory for %s, logging to stdout only: %v", path, err)
		return nopCloser{}
	}

	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rot))
	return rot
}
