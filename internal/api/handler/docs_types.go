package handler

import "github.com/spandanmajumder/portfolio/internal/core/domain"

// errorBody documents the error envelope for swag. The runtime value is
// built by the API error handler.
type errorBody struct {
	Message string              `json:"message"`
	Errors  []domain.FieldIssue `json:"errors,omitempty"`
}
