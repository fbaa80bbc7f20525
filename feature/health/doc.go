// Package health exposes operational checks for the two backing stores.
//
// # Checks Provided
//
//   - Storage: Checks that the bucket exists and that the model and report
//     prefixes answer list requests.
//   - Database: Validates that the model and comparison run tables exist
//     with the columns the GORM models declare.
//
// # HTTP Endpoints
//
//   - GET /health : Runs all checks. Returns 503 when any check fails.
//   - GET /health/storage : Runs the storage check.
//   - GET /health/database : Runs the database schema check.
package health
