// Package repository contains the data access logic separated from HTTP
// handlers. This file classifies low-level SQLite errors into typed kinds
// so that higher layers never have to match on error message text. A
// unique-constraint violation surfaces as KindDuplicateKey and is mapped
// by each repository onto its own sentinel (duplicate username, duplicate
// title); a foreign-key failure surfaces as KindForeignKey (e.g. reviewing
// a movie that was deleted underneath the request). Everything else is
// KindOther and should be treated as an unexpected storage failure.
package repository

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Kind is the typed classification of a storage error.
type Kind int

const (
	// KindOther marks unexpected storage failures.
	KindOther Kind = iota
	// KindDuplicateKey marks unique-constraint violations.
	KindDuplicateKey
	// KindForeignKey marks foreign-key constraint violations.
	KindForeignKey
)

// Classify inspects a driver error and returns its Kind.  It relies on the
// SQLite extended result codes carried by the driver error value, never on
// the message string.
func Classify(err error) Kind {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return KindOther
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return KindDuplicateKey
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return KindForeignKey
	default:
		return KindOther
	}
}
