package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eduplatform_backend/internal/config"
)

func TestLocalStorageProviderUpload(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{Type: "local", LocalPath: dir}}

	url, err := p.Upload(context.Background(), "assignments/a1/report.txt", strings.NewReader("hello"), 5, "text/plain")
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if url != "/uploads/assignments/a1/report.txt" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "assignments", "a1", "report.txt"))
	if err != nil {
		t.Fatalf("reading uploaded file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("file content = %q, want %q", data, "hello")
	}

	if err := p.Delete(context.Background(), "assignments/a1/report.txt"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "assignments", "a1", "report.txt")); !os.IsNotExist(err) {
		t.Error("file still present after Delete")
	}
}

func TestNewStorageServiceUnknownType(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "ftp"

	if _, err := NewStorageService(cfg); err == nil {
		t.Error("NewStorageService accepted an unknown storage type")
	}
}
