// Package linktag turns a list of URLs into a tagged content collection.
// It fetches each page through a content-addressed on-disk HTML cache,
// extracts a normalized title/body, asks a text-generation model for
// hashtag annotations, and persists the results as an ordered collection.
//
// This package contains domain types and capability interfaces following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// gemini/, sqlite/).
package linktag
