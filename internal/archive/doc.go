// Package archive persists resolved matches in SQLite so past review
// sessions can be inspected after the in-memory session is gone.
//
// The table is an append-only mirror of the session history ledger, not a
// durable system of record: rows are written after the in-memory
// resolution has already committed, and a lost row never affects review
// semantics. Schema changes bump the version in store.go; users clear the
// database to adopt the new schema.
package archive
