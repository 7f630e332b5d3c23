package domain

// UploadKind selects the naming prefix and content rules for a stored file.
type UploadKind string

const (
	UploadAttachment UploadKind = "attachment"
	UploadPortfolio  UploadKind = "portfolio"
	UploadCaseStudy  UploadKind = "case-study"
)

// ImagesOnly reports whether the kind only accepts image content.
func (k UploadKind) ImagesOnly() bool {
	return k == UploadPortfolio || k == UploadCaseStudy
}

// StoredFile is the result of persisting an uploaded file.
type StoredFile struct {
	URL          string
	OriginalName string
	StoredName   string
	ContentType  string
	Size         int64
}
