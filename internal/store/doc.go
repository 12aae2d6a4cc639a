// Package store defines the persistence ports for the application.
// Interfaces live here; the PostgreSQL implementations live in
// internal/platform/postgres. Use-cases depend only on these interfaces,
// so storage can be swapped or mocked without touching business logic.
package store
