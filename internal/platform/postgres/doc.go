// Package postgres provides PostgreSQL implementations of the store
// interfaces, along with query building and driver error classification.
package postgres
