// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).
The remote address is the client IP from GetClientIP.

# CORS Middleware

Enable cross-origin requests from the hosting page:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin, mux),
	}

With "*" the request origin is reflected; otherwise the configured origin
is sent. Allows methods GET, POST, DELETE, OPTIONS and exposes
Content-Disposition so downloads keep their filename. OriginAllowed applies
the same rule to WebSocket upgrades.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var env models.CommandEnvelope
	if err := middleware.ParseJSONBody(r, &env); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
