// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional .env file and an optional
// config.yaml. Environment variables use the TASKS_ prefix, e.g.
// TASKS_AUTH_JWT_SECRET.
package config
