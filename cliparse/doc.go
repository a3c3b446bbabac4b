// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite file or PostgreSQL connection string (default: hydrogen-intake.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - Sink: where the submission log lives, db or s3 (default: db)
  - PushType: FORM_DATA_RESPONSE or HYDROGEN_FORM_DATA_UPDATED
  - AllowedOrigin: origin allowed to embed the form (default: *)
  - S3*: bucket, region, endpoint, path style and static credentials

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-sink       Submission sink
	-push-type  Push message type
	-origin     Allowed origin

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	SUBMISSION_SINK   → -sink
	PUSH_MESSAGE_TYPE → -push-type
	ALLOWED_ORIGIN    → -origin

S3 settings come from the environment only: S3_BUCKET, S3_REGION,
S3_ENDPOINT, S3_PATH_STYLE, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY.

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing.

# Validation

ParseFlags returns an error for unknown database types, sinks or push
message types, and when the s3 sink has no S3_BUCKET.

# Example

	// In main.go
	_ = godotenv.Load()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(manager, cfg)
*/
package cliparse
