package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// StdLogger is a lightweight implementation backed by Go's log package.
type StdLogger struct {
	verbose bool
}

// NewStd creates a StdLogger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[ERROR]", msg, err, fields)
}

// levelRank orders log levels for filtering.
var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// FileLogger appends leveled lines to a log file. A hook process has no
// useful stderr, so persistent logs are the only trace it leaves.
type FileLogger struct {
	mu    sync.Mutex
	file  *os.File
	level int
}

// NewFile opens (or creates) the log file for appending. Returns an error
// if the directory cannot be created or the file opened.
func NewFile(path, level string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank["info"]
	}
	return &FileLogger{file: file, level: rank}, nil
}

func (l *FileLogger) write(level, msg string, fields map[string]interface{}) {
	if levelRank[level] < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("[%s] %s", level, msg)
	if len(fields) > 0 {
		line += fmt.Sprintf(" %v", fields)
	}
	log.New(l.file, "", log.LstdFlags).Println(line)
}

func (l *FileLogger) Debug(msg string, fields map[string]interface{}) {
	l.write("debug", msg, fields)
}

func (l *FileLogger) Info(msg string, fields map[string]interface{}) {
	l.write("info", msg, fields)
}

func (l *FileLogger) Warn(msg string, fields map[string]interface{}) {
	l.write("warn", msg, fields)
}

func (l *FileLogger) Error(msg string, err error, fields map[string]interface{}) {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	l.write("error", msg, fields)
}

// Close releases the underlying file.
func (l *FileLogger) Close() error {
	return l.file.Close()
}
