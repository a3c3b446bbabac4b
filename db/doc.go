// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and the
SQL-backed submission log.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, the default) or "postgres"
(lib/pq):

	conn, err := db.Open(db.TypeSQLite, "hydrogen-intake.db")

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - kv_store: key, value (TEXT), updated_at

# Submission Log

SubmissionLog implements export.Sink. The complete log is one JSON array
stored under the key "hydrogenFormSubmissions":

	log := db.NewSubmissionLog(conn, db.TypeSQLite)
	sub, err := log.Append(ctx, snapshot) // sub.ID == "submission-<n>"
	all, err := log.List(ctx)

A missing row reads as an empty log. A row that does not decode is an
error; Append then leaves the row untouched.
*/
package db
