package cfbd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxErrorBody = 64 << 10

// APIError is a non-200 response from the CFBD API. A fetch that fails with
// an APIError reached the service; transport and decoding failures are
// returned as plain wrapped errors instead.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cfbd %s: HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("cfbd %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Unauthorized reports whether the API rejected the credentials.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func newAPIError(endpoint string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.Header.Get("Content-Type"), body),
	}
}

// errorMessage pulls a human-readable message out of an error body.
// Gateways in front of the API answer with HTML pages, so those are parsed
// for their title or first heading.
func errorMessage(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if strings.Contains(contentType, "html") || trimmed[0] == '<' {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed))
		if err != nil {
			return ""
		}
		if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
			return title
		}
		return strings.TrimSpace(doc.Find("h1").First().Text())
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	msg := string(trimmed)
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}
