package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/errors"
	"github.com/momsgrove/grove-api/internal/infrastructure/storage"
)

// Files serves documents held by the in-memory object store. It is only
// mounted when MinIO is disabled, so the links handed out in memory mode
// resolve.
type Files struct {
	store  *storage.MemoryStore
	logger *zap.Logger
}

// NewFilesHandler creates a new files handler
func NewFilesHandler(store *storage.MemoryStore, logger *zap.Logger) *Files {
	return &Files{store: store, logger: logger}
}

// Get handles GET /files/:key
func (h *Files) Get(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil || key == "" {
		return HandleError(h.logger, c, errors.ErrNotFound("file"))
	}

	obj, ok := h.store.Get(key)
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("file"))
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(http.StatusOK, contentType, obj.Data)
}
