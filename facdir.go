// Package facdir extracts faculty member records from university directory
// pages whose layout is not known ahead of time.
//
// A scrape runs a fixed pipeline: the source URL is classified into a Plan,
// the page is fetched once, extraction strategies are tried in the planned
// order until one yields candidates, profile pages are optionally fetched to
// recover missing emails, and the candidates are normalized into Records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package facdir

// Version is the release reported by the API health check and the CLI.
const Version = "0.1.0"
