package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultFileBuffer    = 32 * 1024
	defaultConsoleBuffer = 1000
)

type Options struct {
	Service string
	Level   string
	// Dir holds <service>.log. An empty Dir logs to stdout only.
	Dir string
	// AsyncConsole mirrors entries to stdout from a background goroutine.
	AsyncConsole bool
}

// OptionsFromEnv reads LOG_LEVEL, LOG_DIR and LOG_ASYNC_CONSOLE.
func OptionsFromEnv(service string) Options {
	dir, ok := os.LookupEnv("LOG_DIR")
	if !ok {
		dir = "logs"
	}
	return Options{
		Service:      service,
		Level:        os.Getenv("LOG_LEVEL"),
		Dir:          dir,
		AsyncConsole: os.Getenv("LOG_ASYNC_CONSOLE") == "true",
	}
}

// NewLogger builds the process logger from the environment and exits when the
// log file cannot be opened.
func NewLogger(service string) (*logrus.Logger, func()) {
	logger, closeFn, err := New(OptionsFromEnv(service))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger, closeFn
}

// New returns a JSON logger and a function that flushes and closes its sinks.
func New(opts Options) (*logrus.Logger, func(), error) {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(parseLevel(opts.Level))

	if opts.Dir == "" {
		logger.SetOutput(os.Stdout)
		return logger, func() {}, nil
	}

	service := opts.Service
	if service == "" {
		service = "gateway"
	}
	if err := os.MkdirAll(opts.Dir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	logFile := filepath.Join(opts.Dir, filepath.Base(service)+".log")

	fileWriter, err := NewAsyncFileWriter(logFile, defaultFileBuffer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(fileWriter)

	bufferSize := 0
	if opts.AsyncConsole {
		bufferSize = defaultConsoleBuffer
	}
	console := NewConsoleHook(os.Stdout, bufferSize)
	logger.AddHook(console)
	closers := []io.Closer{console, fileWriter}

	return logger, func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}, nil
}

func parseLevel(level string) logrus.Level {
	if level == "" {
		return logrus.InfoLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
