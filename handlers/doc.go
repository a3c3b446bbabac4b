// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the hydrogen intake API.

# Handler Types

Each handler is a struct with the session manager and config:

  - FormHandler: form sessions, edit commands, mirror, submit, submission log
  - HostHandler: WebSocket connection for the hosting page

	formHandler := handlers.NewFormHandler(manager, cfg)

# Form Lifecycle

	POST   /forms                  → CreateForm (default model, version 0)
	GET    /forms/{id}             → GetForm
	POST   /forms/{id}/commands    → ApplyCommand ({"type": ..., "payload": ...})
	POST   /forms/{id}/reset       → ResetForm
	GET    /forms/{id}/mirror      → GetMirror (hidden mirror node content)
	POST   /forms/{id}/submit      → Submit (?format=csv|json, attachment)
	DELETE /forms/{id}             → CloseForm
	GET    /forms/{id}/submissions → ListFormSubmissions
	GET    /submissions            → ListSubmissions

Form responses carry the model, its version and the quantity unit of each
storage device (gal for liquid, scf for gaseous).

# Errors

  - invalid enum value, unknown preference, malformed command: 400
  - unknown session, device or dispenser: 404
  - anything else: 500

A failed submission log update does not fail Submit; the download is still
returned, without the X-Submission-Id header.

# Host Connection

	GET    /forms/{id}/host        → HostHandler.Connect

The upgrade checks the Origin header against the allowed origin. Once
connected the host receives the current model, then a push after every
edit and a FORM_SUBMISSION message per submit. Sending
{"type":"GET_FORM_DATA"} gets a FORM_DATA_RESPONSE reply. Closing the
session closes the connection.
*/
package handlers
