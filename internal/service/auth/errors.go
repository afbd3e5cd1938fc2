package auth

import "errors"

// Common authentication service errors
var (
	// ErrDecode indicates a token could not be decoded: malformed, signed
	// with another key or algorithm, or carrying no subject.
	ErrDecode = errors.New("token could not be decoded")

	// ErrInvalidToken indicates the token failed validation.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrSubjectMismatch indicates the token was issued for another subject.
	ErrSubjectMismatch = errors.New("token subject does not match")

	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrWeakSecret is returned when the signing key is shorter than MinSecretLength.
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
)
