// Package runstore persists carving runs to SQLite so parameter sweeps
// can be compared after the fact. Schema changes go through embedded
// golang-migrate migrations.
package runstore
