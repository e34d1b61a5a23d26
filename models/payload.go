package models

// Document is an opaque key/value payload. Task inputs and results and audit
// before/after snapshots are carried as-is: the core does not type them.
type Document map[string]any
