// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the hydrogen intake API server.

The server hosts live hydrogen facility intake forms: facility preferences,
storage devices and fueling equipment. Each form is mirrored into a hidden
node and pushed to the hosting page after every edit. Submissions are
downloaded as CSV or JSON and appended to a submission log.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first.

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): SQLite file or PostgreSQL URL (default: hydrogen-intake.db)
  - DATABASE_TYPE (-t): sqlite or postgres
  - SUBMISSION_SINK (-sink): db or s3
  - PUSH_MESSAGE_TYPE (-push-type): FORM_DATA_RESPONSE or HYDROGEN_FORM_DATA_UPDATED
  - ALLOWED_ORIGIN (-origin): origin allowed to embed the form
  - S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_PATH_STYLE: S3 submission log

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (forms, host connection)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain, wire and request/response types
  - form: Defaults, mutations and edit commands
  - ids: Item and session ids
  - bridge: Hidden mirror node and host window messaging
  - export: CSV/JSON export and the submission flow
  - session: Live form sessions
  - db: SQL connection, schema and submission log
  - remote: S3 submission log
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
