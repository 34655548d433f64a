// Package formpull extracts client records from CRM pages that only expose
// their data as rendered HTML forms. It is used during data migrations to
// pull one record per identifier out of the source system.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, slog/).
package formpull
