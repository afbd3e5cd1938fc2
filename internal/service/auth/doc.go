// Package auth issues and validates HS256 bearer tokens and hashes
// passwords with bcrypt. Tokens are stateless and cannot be revoked before
// they expire.
package auth
