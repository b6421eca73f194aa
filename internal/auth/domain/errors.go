package domain

import (
	"github.com/allisson/assettrack/internal/errors"
)

// Error codes surfaced to API clients.
const (
	CodeMissingCredential    = "missing_credential"
	CodeTokenRejected        = "token_rejected"
	CodeAuthorityUnavailable = "authority_unavailable"
	CodeForbidden            = "forbidden"
)

// Authentication and authorization errors.
var (
	// ErrMissingCredential indicates the request carried no token at all.
	ErrMissingCredential = errors.WithCode(
		errors.Wrap(errors.ErrUnauthorized, "missing credential"),
		CodeMissingCredential,
	)

	// ErrTokenRejected indicates the identity authority judged the token invalid or expired.
	ErrTokenRejected = errors.WithCode(
		errors.Wrap(errors.ErrUnauthorized, "token rejected"),
		CodeTokenRejected,
	)

	// ErrAuthorityUnavailable indicates the identity authority could not be reached after retries.
	ErrAuthorityUnavailable = errors.WithCode(
		errors.Wrap(errors.ErrUnavailable, "identity authority unavailable"),
		CodeAuthorityUnavailable,
	)

	// ErrAccessDenied indicates a valid identity whose role does not admit the request.
	ErrAccessDenied = errors.WithCode(
		errors.Wrap(errors.ErrForbidden, "access denied"),
		CodeForbidden,
	)

	// ErrProfileNotSupported indicates the authority does not expose the profile endpoint.
	ErrProfileNotSupported = errors.Wrap(errors.ErrNotFound, "profile endpoint not supported")
)
