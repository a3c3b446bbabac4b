// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Approach values
const (
	ApproachPrescriptive = "Prescriptive"
	ApproachPerformance  = "Performance"
	ApproachBoth         = "Both (or unsure)"
)

// Underground type values
const (
	UndergroundSome     = "Some underground"
	UndergroundAllAbove = "All above"
)

// Phase values, used for storage type and dispensed form
const (
	PhaseLiquid  = "Liquid"
	PhaseGaseous = "Gaseous"
)

// Location values
const (
	LocationIndoor  = "Indoor"
	LocationOutdoor = "Outdoor"
)

// Public access values
const (
	AccessPublic    = "Public"
	AccessNonpublic = "Nonpublic"
)

// Quantity units, derived from storage type
const (
	UnitGallons   = "gal"
	UnitCubicFeet = "scf"
)

// Cross-window message types
const (
	MessageGetFormData      = "GET_FORM_DATA"
	MessageFormDataResponse = "FORM_DATA_RESPONSE"
	MessageFormDataUpdated  = "HYDROGEN_FORM_DATA_UPDATED"
	MessageFormSubmission   = "FORM_SUBMISSION"
)

// Domain types

// Preferences holds every named facility setting. All keys are always
// present; there is no partial state.
type Preferences struct {
	Approach            string `json:"approach"`
	MobileFeatures      bool   `json:"mobileFeatures"`
	UndergroundType     string `json:"undergroundType"`
	FuelingCapacity     bool   `json:"fuelingCapacity"`
	FuelCells           bool   `json:"fuelCells"`
	H2Production        bool   `json:"h2Production"`
	Combustion          bool   `json:"combustion"`
	SpecialAtmospheres  bool   `json:"specialAtmospheres"`
	MetalHydrideStorage bool   `json:"metalHydrideStorage"`
}

type StorageDevice struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	Location           string `json:"location"`
	Sprinklers         bool   `json:"sprinklers"`
	ExhaustedEnclosure bool   `json:"exhaustedEnclosure"`
	Quantity           string `json:"quantity"`
	MaxPressure        string `json:"maxPressure"`
	MaxDiameter        string `json:"maxDiameter"`
}

// QuantityUnit is gal for liquid storage and scf for gaseous storage.
func (d StorageDevice) QuantityUnit() string {
	if d.Type == PhaseLiquid {
		return UnitGallons
	}
	return UnitCubicFeet
}

// IndoorOptionsApply reports whether Sprinklers and ExhaustedEnclosure
// are meaningful for the device's current location. The values are kept
// either way.
func (d StorageDevice) IndoorOptionsApply() bool {
	return d.Location == LocationIndoor
}

type FuelingEquipment struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	DispensedAs  string `json:"dispensedAs"`
	PublicAccess string `json:"publicAccess"`
}

type SiteLocation struct {
	Country string `json:"country"`
	State   string `json:"state"`
}

// FormModel is the live state of one form. Treat it as a value: the form
// package never modifies a FormModel in place.
type FormModel struct {
	Preferences       Preferences        `json:"preferences"`
	StorageDevices    []StorageDevice    `json:"storageDevices"`
	FuelingEquipments []FuelingEquipment `json:"fuelingEquipments"`
	Location          *SiteLocation      `json:"location,omitempty"`
}

// FormSnapshot is a FormModel captured at submit time.
type FormSnapshot struct {
	FormModel
	Timestamp string `json:"timestamp"`
}

// Submission is one entry of the persisted submission log.
type Submission struct {
	FormSnapshot
	ID string `json:"id"`
}

// Message is the envelope exchanged with the host window.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Request types

// CommandEnvelope carries one tagged edit command; Payload shape depends on Type.
type CommandEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response types

type FormResponse struct {
	SessionID     string            `json:"session_id"`
	Version       uint64            `json:"version"`
	Form          FormModel         `json:"form"`
	QuantityUnits map[string]string `json:"quantity_units"`
}

type SubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
	Count       int          `json:"count"`
}

type SessionClosedResponse struct {
	SessionID string    `json:"session_id"`
	ClosedAt  time.Time `json:"closed_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
