// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors of the local store. Callers match them with [errors.Is].
// Domain kinds such as a missing record or an unknown collection are
// reported with the shared errors of the models package.
var (
	// ErrSchemaDowngrade is returned by Init when the database was created by
	// a newer schema version than the one declared by the running program.
	ErrSchemaDowngrade = errors.New("stored schema version is newer than declared")

	// ErrSchemaMismatch is returned by Init when the database belongs to a
	// different schema or an existing collection changed its key layout.
	ErrSchemaMismatch = errors.New("stored schema does not match declaration")

	// ErrStoreUnavailable is returned when the database file cannot be
	// opened, created or migrated.
	ErrStoreUnavailable = errors.New("local store unavailable")
)

// Low-level database operation errors. Repository methods wrap the driver
// error with one of these.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot be started.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingRecord is returned when a record cannot be stored as JSON.
	ErrEncodingRecord = errors.New("failed to encode record")

	// ErrDecodingRecord is returned when a stored document is not valid JSON.
	ErrDecodingRecord = errors.New("failed to decode record")
)
