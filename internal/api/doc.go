// Package api provides the HTTP handlers, request/response models, and
// error-to-status mapping for the task endpoints.
package api
