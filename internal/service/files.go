package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"phedex-relay/internal/config"
	"phedex-relay/internal/metrics"
	"phedex-relay/internal/model"
)

// ErrEmptyFileName is returned when a read is requested without a file name.
var ErrEmptyFileName = errors.New("file name is empty")

// FileService reads local files for the web client. Names are not
// sanitized; anything the process can open is readable.
type FileService struct {
	root    string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewFileService creates a FileService rooted at cfg.Static.Root.
// The metrics parameter is optional.
func NewFileService(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *FileService {
	return &FileService{
		root:    cfg.Static.Root,
		logger:  logger.With("component", "file_service"),
		metrics: m,
	}
}

// Read returns the full contents of name.
func (s *FileService) Read(name string) (*model.File, error) {
	if name == "" {
		s.record("error")
		return nil, ErrEmptyFileName
	}

	path := s.resolve(name)
	body, err := os.ReadFile(path)
	if err != nil {
		s.record("error")
		return nil, fmt.Errorf("read file %q: %w", name, err)
	}
	s.record("ok")

	s.logger.Debug("read file", "path", path, "bytes", len(body))

	return &model.File{
		Name:        name,
		ContentType: contentType(name, body),
		Body:        body,
	}, nil
}

func (s *FileService) resolve(name string) string {
	if s.root == "" {
		return name
	}
	return filepath.Join(s.root, filepath.FromSlash(name))
}

func (s *FileService) record(result string) {
	if s.metrics != nil {
		s.metrics.FileReads.WithLabelValues(result).Inc()
	}
}

// contentType picks a type from the file extension, falling back to sniffing
// the content.
func contentType(name string, body []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(body)
}
