// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/hydrogen-intake/ids"
	"github.com/danielhkuo/hydrogen-intake/models"
)

// Command is one edit intent. The set of commands is closed; each carries
// its own typed payload.
type Command interface {
	Kind() string
	apply(m models.FormModel, gen ids.Generator) (models.FormModel, error)
}

// Reducer applies commands to models. It owns the id source for commands
// that create items.
type Reducer struct {
	ids ids.Generator
}

func NewReducer(gen ids.Generator) *Reducer {
	if gen == nil {
		gen = ids.Default
	}
	return &Reducer{ids: gen}
}

// Apply returns the model produced by cmd. On error m is returned as is.
func (r *Reducer) Apply(m models.FormModel, cmd Command) (models.FormModel, error) {
	if cmd == nil {
		return m, fmt.Errorf("%w: nil command", ErrUnknownCommand)
	}
	return cmd.apply(m, r.ids)
}

// Preference commands

type SetFlag struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

func (SetFlag) Kind() string { return "SetFlag" }
func (c SetFlag) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return SetPreference(m, c.Key, c.Value)
}

type SetChoice struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (SetChoice) Kind() string { return "SetChoice" }
func (c SetChoice) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return SetEnumPreference(m, c.Key, c.Value)
}

type SetSite struct {
	Country string `json:"country"`
	State   string `json:"state"`
}

func (SetSite) Kind() string { return "SetSite" }
func (c SetSite) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return SetSiteLocation(m, c.Country, c.State), nil
}

type ResetForm struct{}

func (ResetForm) Kind() string { return "ResetForm" }
func (ResetForm) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return Reset(m), nil
}

// Storage device commands

type AddDevice struct{}

func (AddDevice) Kind() string { return "AddDevice" }
func (AddDevice) apply(m models.FormModel, gen ids.Generator) (models.FormModel, error) {
	return AddStorageDevice(m, gen.Next(ids.PrefixStorageDevice)), nil
}

type RemoveDevice struct {
	ID string `json:"id"`
}

func (RemoveDevice) Kind() string { return "RemoveDevice" }
func (c RemoveDevice) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return RemoveStorageDevice(m, c.ID)
}

type RenameDevice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (RenameDevice) Kind() string { return "RenameDevice" }
func (c RenameDevice) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		d.Name = c.Name
		return nil
	})
}

type SetDeviceType struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (SetDeviceType) Kind() string { return "SetDeviceType" }
func (c SetDeviceType) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		if err := checkChoice("type", c.Type, phases); err != nil {
			return err
		}
		d.Type = c.Type
		return nil
	})
}

type SetDeviceLocation struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

func (SetDeviceLocation) Kind() string { return "SetDeviceLocation" }
func (c SetDeviceLocation) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		if err := checkChoice("location", c.Location, places); err != nil {
			return err
		}
		d.Location = c.Location
		return nil
	})
}

type SetDeviceSprinklers struct {
	ID    string `json:"id"`
	Value bool   `json:"value"`
}

func (SetDeviceSprinklers) Kind() string { return "SetDeviceSprinklers" }
func (c SetDeviceSprinklers) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		d.Sprinklers = c.Value
		return nil
	})
}

type SetDeviceExhaustedEnclosure struct {
	ID    string `json:"id"`
	Value bool   `json:"value"`
}

func (SetDeviceExhaustedEnclosure) Kind() string { return "SetDeviceExhaustedEnclosure" }
func (c SetDeviceExhaustedEnclosure) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		d.ExhaustedEnclosure = c.Value
		return nil
	})
}

type SetDeviceQuantity struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (SetDeviceQuantity) Kind() string { return "SetDeviceQuantity" }
func (c SetDeviceQuantity) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		d.Quantity = c.Value
		return nil
	})
}

type SetDeviceMaxPressure struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (SetDeviceMaxPressure) Kind() string { return "SetDeviceMaxPressure" }
func (c SetDeviceMaxPressure) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		d.MaxPressure = c.Value
		return nil
	})
}

type SetDeviceMaxDiameter struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (SetDeviceMaxDiameter) Kind() string { return "SetDeviceMaxDiameter" }
func (c SetDeviceMaxDiameter) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateStorageDevice(m, c.ID, func(d *models.StorageDevice) error {
		d.MaxDiameter = c.Value
		return nil
	})
}

// Fueling equipment commands

type AddEquipment struct{}

func (AddEquipment) Kind() string { return "AddEquipment" }
func (AddEquipment) apply(m models.FormModel, gen ids.Generator) (models.FormModel, error) {
	return AddFuelingEquipment(m, gen.Next(ids.PrefixFuelingEquipment)), nil
}

type RemoveEquipment struct {
	ID string `json:"id"`
}

func (RemoveEquipment) Kind() string { return "RemoveEquipment" }
func (c RemoveEquipment) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return RemoveFuelingEquipment(m, c.ID)
}

type RenameEquipment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (RenameEquipment) Kind() string { return "RenameEquipment" }
func (c RenameEquipment) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateFuelingEquipment(m, c.ID, func(e *models.FuelingEquipment) error {
		e.Name = c.Name
		return nil
	})
}

type SetEquipmentLocation struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

func (SetEquipmentLocation) Kind() string { return "SetEquipmentLocation" }
func (c SetEquipmentLocation) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateFuelingEquipment(m, c.ID, func(e *models.FuelingEquipment) error {
		if err := checkChoice("location", c.Location, places); err != nil {
			return err
		}
		e.Location = c.Location
		return nil
	})
}

type SetEquipmentDispensedAs struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (SetEquipmentDispensedAs) Kind() string { return "SetEquipmentDispensedAs" }
func (c SetEquipmentDispensedAs) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateFuelingEquipment(m, c.ID, func(e *models.FuelingEquipment) error {
		if err := checkChoice("dispensedAs", c.Value, phases); err != nil {
			return err
		}
		e.DispensedAs = c.Value
		return nil
	})
}

type SetEquipmentPublicAccess struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (SetEquipmentPublicAccess) Kind() string { return "SetEquipmentPublicAccess" }
func (c SetEquipmentPublicAccess) apply(m models.FormModel, _ ids.Generator) (models.FormModel, error) {
	return UpdateFuelingEquipment(m, c.ID, func(e *models.FuelingEquipment) error {
		if err := checkChoice("publicAccess", c.Value, accesses); err != nil {
			return err
		}
		e.PublicAccess = c.Value
		return nil
	})
}

var commandTypes = map[string]func() Command{
	"SetFlag":                     func() Command { return &SetFlag{} },
	"SetChoice":                   func() Command { return &SetChoice{} },
	"SetSite":                     func() Command { return &SetSite{} },
	"ResetForm":                   func() Command { return &ResetForm{} },
	"AddDevice":                   func() Command { return &AddDevice{} },
	"RemoveDevice":                func() Command { return &RemoveDevice{} },
	"RenameDevice":                func() Command { return &RenameDevice{} },
	"SetDeviceType":               func() Command { return &SetDeviceType{} },
	"SetDeviceLocation":           func() Command { return &SetDeviceLocation{} },
	"SetDeviceSprinklers":         func() Command { return &SetDeviceSprinklers{} },
	"SetDeviceExhaustedEnclosure": func() Command { return &SetDeviceExhaustedEnclosure{} },
	"SetDeviceQuantity":           func() Command { return &SetDeviceQuantity{} },
	"SetDeviceMaxPressure":        func() Command { return &SetDeviceMaxPressure{} },
	"SetDeviceMaxDiameter":        func() Command { return &SetDeviceMaxDiameter{} },
	"AddEquipment":                func() Command { return &AddEquipment{} },
	"RemoveEquipment":             func() Command { return &RemoveEquipment{} },
	"RenameEquipment":             func() Command { return &RenameEquipment{} },
	"SetEquipmentLocation":        func() Command { return &SetEquipmentLocation{} },
	"SetEquipmentDispensedAs":     func() Command { return &SetEquipmentDispensedAs{} },
	"SetEquipmentPublicAccess":    func() Command { return &SetEquipmentPublicAccess{} },
}

// DecodeCommand builds a Command from its wire envelope.
func DecodeCommand(env models.CommandEnvelope) (Command, error) {
	newCmd, ok := commandTypes[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Type)
	}
	cmd := newCmd()
	if len(env.Payload) > 0 && string(env.Payload) != "null" {
		dec := json.NewDecoder(bytes.NewReader(env.Payload))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cmd); err != nil {
			return nil, fmt.Errorf("%w: %s payload: %v", ErrUnknownCommand, env.Type, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("%w: %s payload: trailing data", ErrUnknownCommand, env.Type)
		}
	}
	return cmd, nil
}
