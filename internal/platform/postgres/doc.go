// Package postgres provides PostgreSQL implementations of the store
// interfaces, the embedded schema migrations and the error mapping from
// PostgreSQL error codes to store errors.
package postgres
