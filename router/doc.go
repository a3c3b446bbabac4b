// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the hydrogen intake API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(manager, cfg)

# Endpoints

Health:

	GET /health

Form sessions:

	POST   /forms      - Create form session
	GET    /forms/{id} - Current model, version, quantity units
	DELETE /forms/{id} - Close session

Editing:

	POST /forms/{id}/commands - Apply one edit command
	POST /forms/{id}/reset    - Restore defaults
	GET  /forms/{id}/mirror   - Hidden mirror node content

Export:

	POST /forms/{id}/submit?format=csv|json - Download and log a submission
	GET  /forms/{id}/submissions            - Submission log via the session bridge
	GET  /submissions                       - Full submission log

Hosting page:

	GET /forms/{id}/host - WebSocket host window

# Handler Initialization

The router creates handler instances with dependency injection:

	formHandler := handlers.NewFormHandler(manager, cfg)
	hostHandler := handlers.NewHostHandler(manager, cfg)
*/
package router
