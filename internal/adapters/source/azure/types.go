package azure

import (
	"github.com/go-playground/validator/v10"
)

// responseValidate checks decoded responses before they are trusted.
var responseValidate = validator.New()

// Request is the keyPhrases request body.
type Request struct {
	Documents []RequestDocument `json:"documents"`
}

// RequestDocument is one input document.
type RequestDocument struct {
	Language string `json:"language"`
	ID       string `json:"id"`
	Text     string `json:"text"`
}

// Response is the keyPhrases response body. KeyPhrases must be present on
// every document; an empty list is valid.
type Response struct {
	Documents []ResponseDocument `json:"documents" validate:"required,min=1,dive"`
	Errors    []DocumentError    `json:"errors"`
}

// ResponseDocument holds the phrases extracted from one document. A missing
// ID is tolerated; the client then falls back to the first document.
type ResponseDocument struct {
	ID         string   `json:"id"`
	KeyPhrases []string `json:"keyPhrases" validate:"required"`
}

// DocumentError is a per-document failure reported by the service.
type DocumentError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Validate checks the response shape.
func (r *Response) Validate() error {
	return responseValidate.Struct(r)
}
