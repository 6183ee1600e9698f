// Package texdex provides a small catalog crawler and title search service.
// It fetches a fixed set of texture and material listing pages, extracts
// item records, stores them deduplicated by URL, and answers substring
// searches over the stored titles.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, zerolog/).
package texdex

// DefaultResultLimit is the maximum number of records returned by a listing
// or search when no other limit is configured.
const DefaultResultLimit = 50
