// Package api holds the HTTP handlers of the task service: registration and
// login, task management, profile lookup and role administration. Handlers
// decode and validate JSON requests, call the services and translate their
// errors into status codes and safe messages.
package api
