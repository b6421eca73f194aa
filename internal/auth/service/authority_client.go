package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	apperrors "github.com/allisson/assettrack/internal/errors"
)

// Authority endpoint paths.
const (
	IdentityPath = "/api/auth/my-role"
	ProfilePath  = "/api/auth/me"
)

// maxErrorBodyBytes caps how much of an error body is kept for diagnostics.
const maxErrorBodyBytes = 512

// StatusError is a transient non-2xx answer from the authority.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("identity authority returned status %d", e.StatusCode)
}

// ErrMissingRole reports a 200 response without a role. It is retried like any malformed body.
var ErrMissingRole = apperrors.New("authority response has no role")

// identityPayload is the JSON body returned by the authority. Ids may be numbers or strings.
type identityPayload struct {
	UserID      any      `json:"userId"`
	ID          any      `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (p identityPayload) toDomain() *authDomain.Identity {
	id := stringifyID(p.UserID)
	if id == "" {
		id = stringifyID(p.ID)
	}

	permissions := make([]authDomain.Permission, 0, len(p.Permissions))
	for _, permission := range p.Permissions {
		permissions = append(permissions, authDomain.Permission(strings.ToLower(permission)))
	}

	return &authDomain.Identity{
		ID:          id,
		Username:    p.Username,
		Email:       p.Email,
		Role:        authDomain.ParseRole(p.Role),
		Permissions: permissions,
	}
}

func stringifyID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

// httpAuthorityClient calls the identity authority over HTTP.
type httpAuthorityClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPAuthorityClient creates an AuthorityClient for baseURL. Each call is bounded by timeout.
// A nil httpClient uses a default client.
func NewHTTPAuthorityClient(baseURL string, timeout time.Duration, httpClient *http.Client) AuthorityClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &httpAuthorityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  httpClient,
	}
}

// FetchIdentity implements AuthorityClient.
func (c *httpAuthorityClient) FetchIdentity(ctx context.Context, token string) (*authDomain.Identity, error) {
	identity, status, err := c.get(ctx, IdentityPath, token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &StatusError{StatusCode: status}
	}
	return identity, nil
}

// FetchProfile implements AuthorityClient.
func (c *httpAuthorityClient) FetchProfile(ctx context.Context, token string) (*authDomain.Identity, error) {
	identity, status, err := c.get(ctx, ProfilePath, token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, authDomain.ErrProfileNotSupported
	}
	return identity, nil
}

// get performs one bearer-authenticated GET. A 404 is reported through the status with a nil
// identity so each endpoint can interpret it.
func (c *httpAuthorityClient) get(
	ctx context.Context,
	path, token string,
) (*authDomain.Identity, int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to build authority request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "identity authority request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload identityPayload
		decoder := json.NewDecoder(resp.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&payload); err != nil {
			return nil, resp.StatusCode, apperrors.Wrap(err, "failed to decode authority response")
		}
		if strings.TrimSpace(payload.Role) == "" {
			return nil, resp.StatusCode, ErrMissingRole
		}
		return payload.toDomain(), resp.StatusCode, nil

	case resp.StatusCode == http.StatusUnauthorized:
		return nil, resp.StatusCode, authDomain.ErrTokenRejected

	case resp.StatusCode == http.StatusNotFound:
		return nil, resp.StatusCode, nil

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
}
