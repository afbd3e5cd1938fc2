// Package service contains the application use cases. It coordinates the
// domain types, the store interfaces and the auth primitives, and returns
// sentinel errors from those packages wrapped with context so that the API
// layer can map them with errors.Is.
package service
