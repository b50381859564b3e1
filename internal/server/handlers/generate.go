// Package handlers provides HTTP request handlers for the servicemap API.
//
// Handlers are organized by domain for maintainability:
//
//   - services.go: Service search, detail and price lookup
//   - tree.go: The linked hierarchy and filter facets
//   - funding.go: Funding source explorer
//   - activities.go: Care management and restorative activity explorers
//   - admin.go: Administrative operations (reload, stats)
//   - health.go: Health and readiness checks
//
// All handlers follow a consistent pattern:
//
//  1. Parse and validate input
//  2. Check cache (if applicable)
//  3. Query the service map snapshot
//  4. Transform data
//  5. Cache result (if applicable)
//  6. Return response
//
// Cached results are keyed by the normalized query and dropped whenever the
// service map is rebuilt.
package handlers

//go:generate gomarkdoc --output README.md .
