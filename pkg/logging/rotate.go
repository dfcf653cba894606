package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DailyFile is a writer appending to one file per day, named
// <prefix>-YYYY-MM-DD.log inside its directory.
type DailyFile struct {
	dir    string
	prefix string
	now    func() time.Time

	mu      sync.Mutex
	file    *os.File
	path    string
	lastDay string
}

// OpenDailyFile creates dir if needed and opens today's file.
func OpenDailyFile(dir, prefix string) (*DailyFile, error) {
	return openDailyFile(dir, prefix, time.Now)
}

func openDailyFile(dir, prefix string, now func() time.Time) (*DailyFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	if prefix == "" {
		prefix = "vista"
	}
	f := &DailyFile{dir: dir, prefix: prefix, now: now}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.rotateLocked(); err != nil {
		return nil, err
	}
	return f, nil
}

// Write appends p to the current day's file, switching files when the
// date changed since the last write.
func (f *DailyFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.now().Format(time.DateOnly) != f.lastDay {
		if err := f.rotateLocked(); err != nil {
			return 0, err
		}
	}
	if f.file == nil {
		return 0, os.ErrClosed
	}
	return f.file.Write(p)
}

// Path returns the current log file path.
func (f *DailyFile) Path() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}

// Close closes the log file. Later writes reopen it.
func (f *DailyFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		f.lastDay = ""
		return err
	}
	return nil
}

func (f *DailyFile) rotateLocked() error {
	if f.file != nil {
		f.file.Close()
		f.file = nil
	}

	today := f.now().Format(time.DateOnly)
	f.lastDay = today
	f.path = filepath.Join(f.dir, f.prefix+"-"+today+".log")

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	f.file = file
	return nil
}

// NewDaily creates a logger writing to daily files in dir.
func NewDaily(dir string, opts Options) (*Logger, io.Closer, error) {
	f, err := OpenDailyFile(dir, opts.Component)
	if err != nil {
		return nil, nil, err
	}
	return New(f, opts), f, nil
}
