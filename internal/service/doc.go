// Package service implements the application use-cases. Each use-case runs
// the same gate before touching storage: declarative field validation
// first, then credential verification, then a single write wrapped in an
// explicit transaction.
package service
