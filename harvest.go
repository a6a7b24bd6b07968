// Package harvest fetches batches of web pages concurrently, drops pages
// that are unreachable or report "page not found", and flattens the
// remaining documents into url/title/paragraph rows ready for tabular export.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package harvest
