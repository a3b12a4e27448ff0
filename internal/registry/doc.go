// Package registry provides the central store of file-acquisition sources.
//
// The Registry keeps every compiled-in source under its stable name and
// tracks which of them are enabled for the active site session. The
// Picker specializes it for the attachment picker UI: given a requested
// set of content types it computes the eligible sources' presentation
// records, and it drops all site-scoped enablements when the logout
// event fires.
//
// During application startup the registry is populated from the Go
// modules and the source manifests, then validated so that the two sides
// cannot drift apart.
package registry
