package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDailyFile_Write(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenDailyFile(dir, "vista")
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte("screen activated\n")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	f.Close()

	files, _ := filepath.Glob(filepath.Join(dir, "vista-*.log"))
	if len(files) != 1 {
		t.Fatalf("expected 1 log file, got %d", len(files))
	}
	content, _ := os.ReadFile(files[0])
	if !strings.Contains(string(content), "screen activated") {
		t.Errorf("expected content in log file, got: %s", content)
	}
}

func TestDailyFile_DateRotation(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	f, err := openDailyFile(dir, "ui", func() time.Time { return day })
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer f.Close()

	if want := filepath.Join(dir, "ui-2026-03-01.log"); f.Path() != want {
		t.Errorf("expected path %s, got %s", want, f.Path())
	}
	f.Write([]byte("first\n"))

	day = day.Add(2 * time.Minute)
	f.Write([]byte("second\n"))

	if want := filepath.Join(dir, "ui-2026-03-02.log"); f.Path() != want {
		t.Errorf("expected path %s after midnight, got %s", want, f.Path())
	}
	first, _ := os.ReadFile(filepath.Join(dir, "ui-2026-03-01.log"))
	second, _ := os.ReadFile(filepath.Join(dir, "ui-2026-03-02.log"))
	if string(first) != "first\n" || string(second) != "second\n" {
		t.Errorf("unexpected contents %q / %q", first, second)
	}
}

func TestNewDaily_UsesComponentPrefix(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewDaily(dir, Options{Format: FormatText, Component: "demo"})
	if err != nil {
		t.Fatalf("NewDaily: %v", err)
	}
	logger.Info("hello")
	closer.Close()

	files, _ := filepath.Glob(filepath.Join(dir, "demo-*.log"))
	if len(files) != 1 {
		t.Fatalf("expected 1 log file, got %d", len(files))
	}
}
