package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

type filePart struct {
	field, name string
	content     []byte
}

// multipartRequest builds a multipart request with the given fields and an
// optional file.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(file.content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestForm_AbsentVersusEmpty(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, http.MethodPut, "/", map[string]string{
		"githubUrl": "",
		"title":     "  Trimmed  ",
	}, nil)
	c := e.NewContext(req, httptest.NewRecorder())

	f, err := newForm(c)
	if err != nil {
		t.Fatalf("newForm: %v", err)
	}

	if got := f.optional("projectUrl"); got != nil {
		t.Fatalf("absent field should be nil, got %q", *got)
	}
	if got := f.optional("githubUrl"); got == nil || *got != "" {
		t.Fatalf("present empty field should be empty string, got %v", got)
	}
	if got := f.optional("title"); got == nil || *got != "Trimmed" {
		t.Fatalf("expected trimmed title, got %v", got)
	}
	if got := f.nonEmpty("githubUrl"); got != nil {
		t.Fatalf("nonEmpty should drop blank values")
	}
}

func TestForm_ListPreservesOrder(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, http.MethodPost, "/", map[string]string{
		"technologies": `["Go","React"]`,
	}, nil)
	c := e.NewContext(req, httptest.NewRecorder())

	f, err := newForm(c)
	if err != nil {
		t.Fatalf("newForm: %v", err)
	}
	got := f.list("technologies")
	if got == nil || len(*got) != 2 || (*got)[0] != "Go" || (*got)[1] != "React" {
		t.Fatalf("unexpected list: %v", got)
	}
	if f.list("tags") != nil {
		t.Fatalf("absent list should be nil")
	}
	if err := f.err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForm_MalformedValues(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, http.MethodPost, "/", map[string]string{
		"technologies": `Go, React`,
		"featured":     "maybe",
	}, nil)
	c := e.NewContext(req, httptest.NewRecorder())

	f, err := newForm(c)
	if err != nil {
		t.Fatalf("newForm: %v", err)
	}
	f.list("technologies")
	f.boolean("featured")

	ve, ok := f.err().(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", f.err())
	}
	if len(ve.Issues) != 2 || ve.Issues[0].Field != "technologies" || ve.Issues[1].Field != "featured" {
		t.Fatalf("unexpected issues: %+v", ve.Issues)
	}
}

func TestNewForm_BodyOverLimitIs413(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, http.MethodPost, "/", map[string]string{"name": "Ada"},
		&filePart{field: "attachment", name: "big.bin", content: bytes.Repeat([]byte("x"), 4096)})
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 1024)
	c := e.NewContext(req, rec)

	_, err := newForm(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestNewForm_MalformedBodyIsValidationError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("name=Ada"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEMultipartForm)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := newForm(c)

	ve, ok := err.(*domain.ValidationError)
	if !ok || ve.Issues[0].Field != "body" {
		t.Fatalf("expected body ValidationError, got %v", err)
	}
}

func TestFormFile_Missing(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, http.MethodPost, "/", map[string]string{"name": "Ada"}, nil)
	c := e.NewContext(req, httptest.NewRecorder())

	file, err := formFile(c, "attachment")
	if err != nil || file != nil {
		t.Fatalf("expected no file and no error, got %v %v", file, err)
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	c.SetParamValues("42")
	if id, err := pathID(c); err != nil || id != 42 {
		t.Fatalf("expected 42, got %d %v", id, err)
	}

	c.SetParamValues("abc")
	if _, err := pathID(c); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
