package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"phedex-relay/internal/service"
)

// FileHandler serves raw local file contents.
type FileHandler struct {
	service *service.FileService
}

// NewFileHandler creates a FileHandler.
func NewFileHandler(svc *service.FileService) *FileHandler {
	return &FileHandler{service: svc}
}

// ReadFile returns the contents of the file named by the "name" query parameter.
func (h *FileHandler) ReadFile(c echo.Context) error {
	return h.serve(c, c.QueryParam("name"))
}

// Default treats the unmatched request path as a file name.
func (h *FileHandler) Default(c echo.Context) error {
	return h.serve(c, strings.TrimPrefix(c.Request().URL.Path, "/"))
}

func (h *FileHandler) serve(c echo.Context, name string) error {
	f, err := h.service.Read(name)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, f.ContentType, f.Body)
}
