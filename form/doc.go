// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package form implements the form model and its mutation API.

# Model Values

A models.FormModel is handled as an immutable value. Every mutation
returns a new model and never writes through to the input, so a caller
holding an older model still sees the older state:

	m := form.Default()
	m2, err := form.SetPreference(m, form.KeyFuelingCapacity, true)
	// m.Preferences.FuelingCapacity is still false

On error the input model is returned unchanged.

# Mutation API

  - SetPreference / SetEnumPreference
  - SetSiteLocation
  - AddStorageDevice / UpdateStorageDevice / RemoveStorageDevice
  - AddFuelingEquipment / UpdateFuelingEquipment / RemoveFuelingEquipment
  - Reset

# Commands

Edits arriving from outside are tagged commands, each with a typed
payload, run through a Reducer:

	r := form.NewReducer(ids.Default)
	m, err = r.Apply(m, form.AddDevice{})
	m, err = r.Apply(m, form.SetDeviceType{ID: m.StorageDevices[0].ID, Type: models.PhaseLiquid})

DecodeCommand turns a models.CommandEnvelope into a Command.

# Errors

  - ErrInvalidEnumValue: value outside a closed choice
  - ErrNotFound: no item with that id
  - ErrUnknownPreference: key is not a preference of that kind
  - ErrUnknownCommand: unknown command type or malformed payload
*/
package form
