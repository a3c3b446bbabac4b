package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Submission sinks
const (
	SinkDB = "db"
	SinkS3 = "s3"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	Sink     string
	PushType string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3PathStyle       bool
	S3AccessKeyID     string
	S3SecretAccessKey string

	AllowedOrigin string
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("hydrogen-intake", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.Sink, "sink", "", "Submission log sink (db or s3)")
	fs.StringVar(&cfg.PushType, "push-type", "", "Message type pushed to the host after each edit")
	fs.StringVar(&cfg.AllowedOrigin, "origin", "", "Origin allowed to embed the form")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "hydrogen-intake.db")
	cfg.DatabaseType = fallback(cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.Sink = fallback(cfg.Sink, "SUBMISSION_SINK", SinkDB)
	if cfg.Sink != SinkDB && cfg.Sink != SinkS3 {
		return Config{}, fmt.Errorf("unsupported submission sink %q", cfg.Sink)
	}

	cfg.PushType = fallback(cfg.PushType, "PUSH_MESSAGE_TYPE", "FORM_DATA_RESPONSE")
	if cfg.PushType != "FORM_DATA_RESPONSE" && cfg.PushType != "HYDROGEN_FORM_DATA_UPDATED" {
		return Config{}, fmt.Errorf("unsupported push message type %q", cfg.PushType)
	}

	cfg.AllowedOrigin = fallback(cfg.AllowedOrigin, "ALLOWED_ORIGIN", "*")

	// S3 settings are env only
	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3Region = fallback("", "S3_REGION", "us-east-1")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3PathStyle = strings.EqualFold(os.Getenv("S3_PATH_STYLE"), "true")
	cfg.S3AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if cfg.Sink == SinkS3 && cfg.S3Bucket == "" {
		return Config{}, errors.New("S3_BUCKET required for s3 sink")
	}

	return cfg, nil
}

func fallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}
