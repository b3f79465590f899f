// Package domain contains the core domain model for the diagnostics
// surface.
//
// This package defines:
//   - Value Objects: backend kinds, column/index/sequence descriptions
//   - Domain Errors: rule violation errors shared across layers
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
package domain
