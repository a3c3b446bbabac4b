// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session holds live form sessions.

A Session owns one form model with a version counter, a headless mirror
document and the bridge to its host window. Every successful command bumps
the version and re-mirrors the model; failed commands change nothing.

	mgr := session.NewManager(sink, models.MessageFormDataResponse)
	s, _ := mgr.Create()
	model, version, err := s.Apply(form.AddDevice{})
	res, err := s.Submit(ctx, export.FormatCSV)

Hosts attach with AttachHost and send messages through Deliver. Each
session has one bridge subscription, released by Close. Manager.Close
releases all of them at shutdown.
*/
package session
