// Package mocks provides hand-written in-memory implementations of the
// store interfaces for unit tests. They honor the same sentinel-error
// contracts as the PostgreSQL implementations.
package mocks
