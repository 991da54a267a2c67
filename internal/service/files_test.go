package service

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"phedex-relay/internal/config"
	"phedex-relay/internal/metrics"
)

func TestFileService_Read(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.html":            "<html><body>PhEDEx</body></html>",
		"js/phedex-registry.js": "PHEDEX.Registry = function(sandbox) {};\n",
		"data.unknownext":       "plain words",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s := NewFileService(&config.Config{Static: config.StaticConfig{Root: root}}, discardLogger(), nil)

	tests := []struct {
		name     string
		wantType string
	}{
		{"index.html", "text/html"},
		{"js/phedex-registry.js", "javascript"},
		{"data.unknownext", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := s.Read(tt.name)
			if err != nil {
				t.Fatalf("Read(%q) error = %v", tt.name, err)
			}
			if diff := cmp.Diff(files[tt.name], string(f.Body)); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(f.ContentType, tt.wantType) {
				t.Errorf("ContentType = %q, want it to contain %q", f.ContentType, tt.wantType)
			}
		})
	}
}

func TestFileService_Read_NoRootUsesNameAsGiven(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.txt")
	if err := os.WriteFile(path, []byte("absolute"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileService(&config.Config{}, discardLogger(), nil)

	f, err := s.Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(f.Body) != "absolute" {
		t.Errorf("body = %q, want %q", f.Body, "absolute")
	}
}

func TestFileService_Read_Errors(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	m := metrics.New()
	s := NewFileService(&config.Config{Static: config.StaticConfig{Root: root}}, discardLogger(), m)

	if _, err := s.Read("missing.js"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read(missing) error = %v, want fs.ErrNotExist", err)
	}
	if _, err := s.Read(""); !errors.Is(err, ErrEmptyFileName) {
		t.Errorf("Read(\"\") error = %v, want ErrEmptyFileName", err)
	}
	if _, err := s.Read("dir"); err == nil {
		t.Error("Read(dir) expected error for directory, got nil")
	}

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var errorsSeen float64
	for _, f := range families {
		if f.GetName() != "phedex_relay_file_reads_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "result" && lp.GetValue() == "error" {
					errorsSeen = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if errorsSeen != 3 {
		t.Errorf("file_reads_total{result=error} = %v, want 3", errorsSeen)
	}
}
