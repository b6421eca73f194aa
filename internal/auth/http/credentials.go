// Package http provides HTTP middleware and handlers for authentication and authorization.
package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// AccessTokenParam is the query and body field carrying a token when no header is sent.
const AccessTokenParam = "access_token"

// maxTokenBodyBytes caps how much of a request body is inspected for a token.
const maxTokenBodyBytes = 1 << 20

// ExtractToken returns the bearer credential of the request, checking in order the
// Authorization header, the access_token query parameter and the access_token body field.
// The body is restored after inspection so handlers can still bind it.
func ExtractToken(c *gin.Context) string {
	if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
		return token
	}

	if token := c.Query(AccessTokenParam); token != "" {
		return token
	}

	return bodyToken(c)
}

// bearerToken parses "Bearer <token>" (case-insensitive scheme).
func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// bodyToken peeks at JSON or urlencoded bodies for access_token.
func bodyToken(c *gin.Context) string {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil {
		return ""
	}
	if mediaType != "application/json" && mediaType != "application/x-www-form-urlencoded" {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxTokenBodyBytes))
	if err != nil {
		return ""
	}
	rest := c.Request.Body
	c.Request.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(body), rest), closer: rest}

	if mediaType == "application/json" {
		var payload struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return ""
		}
		return payload.AccessToken
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return ""
	}
	return values.Get(AccessTokenParam)
}

// readCloser replays a peeked body while closing the original.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (r readCloser) Close() error {
	return r.closer.Close()
}
