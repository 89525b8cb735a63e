// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package database is Murmur's storage layer on DuckDB.
//
// It owns the schema and every SQL statement the service runs. Rows are
// scanned with sqlx into the structs in internal/models; list and batch
// lookups expand IN clauses with sqlx.In.
//
// # Transactions
//
// Every mutation runs in exactly one transaction through runInTx, which
// rolls back on any error and retries DuckDB write-write conflicts a few
// times with a short backoff. Reads run outside transactions.
//
// # Errors
//
// Missing entities surface as *models.NotFoundError, request problems that
// can only be detected against stored state (a reply whose parent lives on
// another post) as *models.ValidationError, and idempotency violations as
// *models.ConflictError. Everything else is wrapped driver error.
//
// # Testing
//
// Tests open ":memory:" databases through setupTestDB, which serializes
// DuckDB access across the package's tests.
package database
