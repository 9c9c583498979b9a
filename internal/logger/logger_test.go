package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesPerLevelFiles(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer l.Close()

	l.Info("camera %s loaded", "front")
	l.Warning("slow device")
	l.Error("save failed: %v", "timeout")

	tests := []struct {
		file string
		want string
	}{
		{InfoFile, "camera front loaded"},
		{WarningFile, "slow device"},
		{ErrorFile, "save failed: timeout"},
	}
	for _, tt := range tests {
		data, err := os.ReadFile(filepath.Join(dir, tt.file))
		if err != nil {
			t.Fatalf("ReadFile(%s) error: %v", tt.file, err)
		}
		if !strings.Contains(string(data), tt.want) {
			t.Errorf("%s = %q, want it to contain %q", tt.file, data, tt.want)
		}
	}
}

func TestCleanLogs_TruncatesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer l.Close()

	l.Error("first failure")
	if err := l.CleanLogs(ErrorFile); err != nil {
		t.Fatalf("CleanLogs() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ErrorFile))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("error.log = %q, want empty", data)
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Warning("no device configured")

	if !strings.Contains(buf.String(), "WARNING") || !strings.Contains(buf.String(), "no device configured") {
		t.Errorf("output = %q, want warning line", buf.String())
	}
	if err := l.CleanLogs(InfoFile); err != nil {
		t.Errorf("CleanLogs() on writer logger error: %v", err)
	}
}
