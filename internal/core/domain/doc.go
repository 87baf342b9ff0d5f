// Package domain defines the core business entities for BdLens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types
// mirrored from the BdLens backend:
//
//   - User: An authenticated account
//   - Document / DocumentListItem: A discovered government document
//   - DocumentSource: A crawl source configured by admins
//   - SearchResult: A ranked semantic search hit
//   - CrawlJob: One ingestion run against a source
//   - AnalyticsOverview: A read-only usage snapshot
//
// Entities are created and destroyed by the backend. The client holds
// request-scoped copies only; Validate methods check the fields a caller
// relies on so malformed payloads fail at the decode boundary.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
