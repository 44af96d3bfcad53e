// Package postgres implements the storage repository contracts against
// PostgreSQL.
//
// Every operation binds typed arguments into exactly one named parameterized
// statement and runs it under the configured statement timeout. Unique
// violations surface as Conflict, empty single-row reads as NotFound, and
// everything else as Persistence.
package postgres
