package hcl

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

const (
	// ContentTypeHCL is the custom MIME type for HCL timeline definitions
	ContentTypeHCL = "application/vnd.hcl"

	// ContentTypeJSON is the standard MIME type for JSON
	ContentTypeJSON = "application/json"
)

// DetectContentType decides whether a request body is JSON or HCL, first
// from the Content-Type header and then by inspecting the body itself.
func DetectContentType(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			if mediaType == ContentTypeHCL {
				return ContentTypeHCL, nil
			}
			if mediaType == ContentTypeJSON {
				return ContentTypeJSON, nil
			}
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}

	// Reset the body so it can be read again later
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	trimmedBody := bytes.TrimSpace(body)
	if len(trimmedBody) > 0 {
		// JSON starts with { or [; HCL starts with an identifier.
		firstChar := trimmedBody[0]
		if firstChar == '{' || firstChar == '[' {
			return ContentTypeJSON, nil
		}
		if IsHCL(trimmedBody) {
			return ContentTypeHCL, nil
		}
	}

	return ContentTypeJSON, nil
}

// IsHCLBasedOnExtension checks if the filename has an HCL extension
func IsHCLBasedOnExtension(filename string) bool {
	return strings.HasSuffix(filename, ".hcl") ||
		strings.HasSuffix(filename, ".tf") ||
		strings.HasSuffix(filename, ".tfvars")
}
