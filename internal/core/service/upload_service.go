package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

const (
	// DefaultMaxUploadBytes is the per-file cap when none is configured.
	DefaultMaxUploadBytes int64 = 10 << 20

	sniffLen       = 3072
	maxFilenameLen = 100
	fallbackName   = "file"
)

// UploadService names uploaded files `<kind>-<unixmillis>-<name>` and hands
// them to a FileStore.
type UploadService struct {
	store    ports.FileStore
	removals ports.RemovalQueue
	maxBytes int64
	log      zerolog.Logger
	now      func() time.Time
}

func NewUploadService(store ports.FileStore, maxBytes int64, log zerolog.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{store: store, maxBytes: maxBytes, log: log, now: time.Now}
}

// WithRemovalQueue makes Discard hand files to q instead of removing them
// inline.
func (s *UploadService) WithRemovalQueue(q ports.RemovalQueue) *UploadService {
	s.removals = q
	return s
}

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Store checks the size cap before any byte is persisted, sniffs the content
// type and writes the file. Portfolio and case-study uploads must be images.
func (s *UploadService) Store(ctx context.Context, kind domain.UploadKind, file ports.FileUpload) (*domain.StoredFile, error) {
	if file.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if file.Open == nil {
		return nil, &domain.UploadError{Message: "no file content"}
	}

	rc, err := file.Open()
	if err != nil {
		s.log.Warn().Err(err).Str("filename", file.Filename).Msg("failed to open upload")
		return nil, &domain.UploadError{Message: "could not read the uploaded file"}
	}
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		s.log.Warn().Err(err).Str("filename", file.Filename).Msg("failed to read upload")
		return nil, &domain.UploadError{Message: "could not read the uploaded file"}
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if kind.ImagesOnly() && !strings.HasPrefix(mtype.String(), "image/") {
		return nil, &domain.UploadError{Message: fmt.Sprintf("%s must be an image, got %s", kind, mtype.String())}
	}

	original := SanitizeFilename(file.Filename)
	name := fmt.Sprintf("%s-%d-%s", kind, s.now().UnixMilli(), original)

	body := &cappedReader{r: io.MultiReader(bytes.NewReader(head), rc), remaining: s.maxBytes}
	url, err := s.store.Put(ctx, name, mtype.String(), body)
	if err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("store upload: %w", err)
	}

	s.log.Info().
		Str("kind", string(kind)).
		Str("name", name).
		Int64("size", body.read).
		Msg("file stored")

	return &domain.StoredFile{
		URL:          url,
		OriginalName: file.Filename,
		StoredName:   name,
		ContentType:  mtype.String(),
		Size:         body.read,
	}, nil
}

// Discard removes a stored file whose owning record could not be saved.
func (s *UploadService) Discard(ctx context.Context, file *domain.StoredFile) {
	if file == nil {
		return
	}
	if s.removals != nil && s.removals.Enqueue(file.StoredName) {
		return
	}
	if err := s.store.Remove(ctx, file.StoredName); err != nil {
		s.log.Warn().Err(err).Str("name", file.StoredName).Msg("failed to discard orphaned upload")
	}
}

// SanitizeFilename reduces a client supplied name to a safe base name.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if len(out) > maxFilenameLen {
		out = out[len(out)-maxFilenameLen:]
	}
	if out == "" || out == "_" {
		return fallbackName
	}
	return out
}

// cappedReader fails with ErrFileTooLarge once more than remaining bytes
// have been read, covering clients that under-report the part size.
type cappedReader struct {
	r         io.Reader
	remaining int64
	read      int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, domain.ErrFileTooLarge
	}
	return n, err
}
