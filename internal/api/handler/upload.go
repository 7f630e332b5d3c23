package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/api/metrics"
	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// storeFormFile persists the named file part, if present. It returns nil
// when the request carries no file.
func storeFormFile(c echo.Context, uploads ports.UploadService, field string, kind domain.UploadKind) (*domain.StoredFile, error) {
	file, err := formFile(c, field)
	if err != nil || file == nil {
		return nil, err
	}

	stored, err := uploads.Store(c.Request().Context(), kind, *file)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(string(kind), uploadResult(err)).Inc()
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues(string(kind), "stored").Inc()
	metrics.UploadSizeBytes.WithLabelValues(string(kind)).Observe(float64(stored.Size))
	return stored, nil
}

// discardOnError removes an uploaded file when the record that should own it
// was not saved.
func discardOnError(c echo.Context, uploads ports.UploadService, stored *domain.StoredFile, err error) {
	if err != nil && stored != nil {
		uploads.Discard(c.Request().Context(), stored)
	}
}

func uploadResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return "too_large"
	case errors.Is(err, domain.ErrUpload):
		return "rejected"
	default:
		return "error"
	}
}

func countWrite(entity, op string) {
	metrics.ContentWritesTotal.WithLabelValues(entity, op).Inc()
}
