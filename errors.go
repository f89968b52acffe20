package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeAuthenticationFailed is attached to any credential rejection.
	TextCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	// TextCodeAccountExists is attached to registration uniqueness conflicts.
	TextCodeAccountExists = "ACCOUNT_EXISTS"
	// TextCodeDefaultRoleMissing is attached to the provisioning fault raised
	// when the default role record is absent.
	TextCodeDefaultRoleMissing = "DEFAULT_ROLE_MISSING"
	// TextCodeActivationNotFound is attached to unknown activation tokens.
	TextCodeActivationNotFound = "ACTIVATION_TOKEN_NOT_FOUND"
	// TextCodeAlreadyActivated is attached to replayed activation requests.
	TextCodeAlreadyActivated = "ALREADY_ACTIVATED"
)

// ErrAuthenticationFailed is returned for any credential mismatch or unknown
// account. It deliberately does not say which of the two was wrong.
var ErrAuthenticationFailed = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeAuthenticationFailed).
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the soft signal from the credential
// verifier; callers map it to ErrAuthenticationFailed before it leaves the
// package.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match hash", goerrors.CategoryAuth).
	WithTextCode(TextCodeAuthenticationFailed)

// ErrNoEmptyString is returned when a blank secret reaches the hasher.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation)

// ErrDefaultRoleMissing is a deployment fault: the configured default role
// was never provisioned. Registration refuses to proceed without it.
var ErrDefaultRoleMissing = goerrors.New("default role is not provisioned", goerrors.CategoryInternal).
	WithTextCode(TextCodeDefaultRoleMissing).
	WithCode(goerrors.CodeInternal)

// ErrActivationNotFound is returned when no activation record matches the
// presented token.
var ErrActivationNotFound = goerrors.New("activation token not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeActivationNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrAlreadyActivated rejects a replayed activation link. Re-activating an
// already active record is a conflict, never a silent no-op.
var ErrAlreadyActivated = goerrors.New("account already activated", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyActivated).
	WithCode(goerrors.CodeConflict)

// NewAccountExistsError builds the registration conflict naming the field
// that collided (username or email).
func NewAccountExistsError(field, value string) *goerrors.Error {
	return goerrors.New("account already exists with this "+field, goerrors.CategoryConflict).
		WithTextCode(TextCodeAccountExists).
		WithCode(goerrors.CodeConflict).
		WithMetadata(map[string]any{
			"field": field,
			"value": value,
		})
}

// IsAccountExists reports whether err is a registration uniqueness conflict.
func IsAccountExists(err error) bool {
	return hasTextCode(err, TextCodeAccountExists)
}

// IsAuthenticationFailed reports whether err is a credential rejection.
func IsAuthenticationFailed(err error) bool {
	return hasTextCode(err, TextCodeAuthenticationFailed)
}

// CollidingField extracts the colliding field name from an account-exists
// error, or "" when err is something else.
func CollidingField(err error) string {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return ""
	}
	if richErr.TextCode != TextCodeAccountExists {
		return ""
	}
	if field, ok := richErr.Metadata["field"].(string); ok {
		return field
	}
	return ""
}

func hasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
