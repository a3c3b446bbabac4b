// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package remote stores the submission log in S3 or an S3-compatible server.

S3Log implements export.Sink. The log is one pretty-printed JSON array at
object key "hydrogenFormSubmissions.json":

	log, err := remote.New(ctx, remote.Config{
		Bucket:    "intake",
		Endpoint:  "http://localhost:9000", // MinIO
		PathStyle: true,
	})

A missing object reads as an empty log.
*/
package remote
