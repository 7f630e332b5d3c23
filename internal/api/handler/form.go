package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// form reads multipart or urlencoded fields while telling an absent field
// apart from an empty one. Parse problems are collected into one
// ValidationError.
type form struct {
	c    echo.Context
	errs *domain.ValidationError
}

func newForm(c echo.Context) (*form, error) {
	if _, err := c.FormParams(); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, err
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
		}
		return nil, domain.NewValidationError("body", "malformed form body")
	}
	return &form{c: c, errs: &domain.ValidationError{}}, nil
}

func (f *form) has(name string) bool {
	params, _ := f.c.FormParams()
	_, ok := params[name]
	return ok
}

// str returns the trimmed value, or "" when absent.
func (f *form) str(name string) string {
	return strings.TrimSpace(f.c.FormValue(name))
}

// optional returns nil when the field is absent.
func (f *form) optional(name string) *string {
	if !f.has(name) {
		return nil
	}
	v := f.str(name)
	return &v
}

// nonEmpty returns nil when the field is absent or blank.
func (f *form) nonEmpty(name string) *string {
	v := f.str(name)
	if v == "" {
		return nil
	}
	return &v
}

func (f *form) boolean(name string) *bool {
	if !f.has(name) {
		return nil
	}
	raw := f.str(name)
	if raw == "" {
		b := false
		return &b
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		f.errs.Add(name, name+" must be true or false")
		return nil
	}
	return &b
}

// list decodes a JSON-encoded array of strings. Absent means nil.
func (f *form) list(name string) *[]string {
	if !f.has(name) {
		return nil
	}
	raw := f.str(name)
	out := []string{}
	if raw == "" {
		return &out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		f.errs.Add(name, name+" must be a JSON array of strings")
		return nil
	}
	return &out
}

func (f *form) err() error {
	return f.errs.OrNil()
}

// formFile returns the named file part, or nil when the request has none.
func formFile(c echo.Context, name string) (*ports.FileUpload, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, domain.NewValidationError(name, "unreadable file upload")
	}
	return &ports.FileUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}, nil
}

func orFalse(b *bool) bool {
	return b != nil && *b
}

func orEmpty(l *[]string) []string {
	if l == nil {
		return []string{}
	}
	return *l
}
