package service

import (
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// htmlSanitizer strips scripts, event handlers and other unsafe markup from
// rich-text bodies while keeping ordinary formatting tags.
var htmlSanitizer = bluemonday.UGCPolicy()

func sanitizeHTML(s *string) *string {
	if s == nil {
		return nil
	}
	clean := htmlSanitizer.Sanitize(*s)
	return &clean
}

// normalizeList trims entries and drops empty ones, keeping order. A nil
// list becomes an empty one so stored documents never hold null arrays.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nowMillis(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}
