// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, wire, request, and response types.

# Domain Types

  - Preferences: every named facility setting (flags and closed enums)
  - StorageDevice: one storage vessel; QuantityUnit is derived from Type
  - FuelingEquipment: one dispenser
  - SiteLocation: optional country/state of the facility
  - FormModel: preferences plus the two ordered equipment collections
  - FormSnapshot: a FormModel stamped with an ISO-8601 timestamp
  - Submission: a FormSnapshot tagged with its sequential log id

JSON field names are camelCase because the same documents are read by the
hosting page:

	{
	  "preferences": {"approach": "Prescriptive", "fuelingCapacity": true, ...},
	  "storageDevices": [{"id": "...", "name": "Storage Device 1", ...}],
	  "fuelingEquipments": [],
	  "timestamp": "2025-03-01T12:00:00.000Z",
	  "id": "submission-1"
	}

# Wire Types

Message is the envelope posted to and received from the host window:

	GET_FORM_DATA              host → form
	FORM_DATA_RESPONSE         form → host (reply, or push after every edit)
	HYDROGEN_FORM_DATA_UPDATED form → host (alternate push)
	FORM_SUBMISSION            form → host (once per submit)

# Request and Response Types

  - CommandEnvelope: type, payload
  - FormResponse: session_id, version, form, quantity_units
  - SubmissionsResponse: submissions, count
  - SessionClosedResponse: session_id, closed_at
  - ErrorResponse: error, message

# Constants

Closed enumerations:

	Approach:        Prescriptive | Performance | Both (or unsure)
	UndergroundType: Some underground | All above
	Phase:           Liquid | Gaseous
	Location:        Indoor | Outdoor
	PublicAccess:    Public | Nonpublic
*/
package models
