// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/danielhkuo/hydrogen-intake/models"
)

// Every function here returns a new model and leaves its input untouched.
// On error the input model is returned unchanged.

// SetPreference sets a boolean preference.
func SetPreference(m models.FormModel, key string, value bool) (models.FormModel, error) {
	out := Clone(m)
	field := flagField(&out.Preferences, key)
	if field == nil {
		return m, fmt.Errorf("%w: %q is not a boolean preference", ErrUnknownPreference, key)
	}
	*field = value
	return out, nil
}

// SetEnumPreference sets a closed-choice preference. The value must be one
// of EnumChoices(key).
func SetEnumPreference(m models.FormModel, key, value string) (models.FormModel, error) {
	out := Clone(m)
	field := enumField(&out.Preferences, key)
	if field == nil {
		return m, fmt.Errorf("%w: %q is not an enum preference", ErrUnknownPreference, key)
	}
	if err := checkChoice(key, value, enumChoices[key]); err != nil {
		return m, err
	}
	*field = value
	return out, nil
}

// SetSiteLocation records the facility's country and state. Empty values
// on both clear the location.
func SetSiteLocation(m models.FormModel, country, state string) models.FormModel {
	out := Clone(m)
	if country == "" && state == "" {
		out.Location = nil
		return out
	}
	out.Location = &models.SiteLocation{Country: country, State: state}
	return out
}

// Reset returns the default template with both collections empty.
func Reset(models.FormModel) models.FormModel {
	return Default()
}

// AddStorageDevice appends a device with the given id and a default name
// numbered by its position at insertion.
func AddStorageDevice(m models.FormModel, id string) models.FormModel {
	out := Clone(m)
	out.StorageDevices = append(out.StorageDevices, models.StorageDevice{
		ID:       id,
		Name:     "Storage Device " + strconv.Itoa(len(m.StorageDevices)+1),
		Type:     models.PhaseGaseous,
		Location: models.LocationOutdoor,
	})
	return out
}

// UpdateStorageDevice applies edit to the device with the given id.
func UpdateStorageDevice(m models.FormModel, id string, edit func(*models.StorageDevice) error) (models.FormModel, error) {
	i := slices.IndexFunc(m.StorageDevices, func(d models.StorageDevice) bool { return d.ID == id })
	if i < 0 {
		return m, fmt.Errorf("%w: storage device %q", ErrNotFound, id)
	}
	out := Clone(m)
	if err := edit(&out.StorageDevices[i]); err != nil {
		return m, err
	}
	return out, nil
}

// RemoveStorageDevice drops the device with the given id.
func RemoveStorageDevice(m models.FormModel, id string) (models.FormModel, error) {
	i := slices.IndexFunc(m.StorageDevices, func(d models.StorageDevice) bool { return d.ID == id })
	if i < 0 {
		return m, fmt.Errorf("%w: storage device %q", ErrNotFound, id)
	}
	out := Clone(m)
	out.StorageDevices = slices.Delete(out.StorageDevices, i, i+1)
	return out, nil
}

// AddFuelingEquipment appends equipment with the given id and a default
// name numbered by its position at insertion.
func AddFuelingEquipment(m models.FormModel, id string) models.FormModel {
	out := Clone(m)
	out.FuelingEquipments = append(out.FuelingEquipments, models.FuelingEquipment{
		ID:           id,
		Name:         "Fueling Equipment " + strconv.Itoa(len(m.FuelingEquipments)+1),
		Location:     models.LocationOutdoor,
		DispensedAs:  models.PhaseGaseous,
		PublicAccess: models.AccessPublic,
	})
	return out
}

// UpdateFuelingEquipment applies edit to the equipment with the given id.
func UpdateFuelingEquipment(m models.FormModel, id string, edit func(*models.FuelingEquipment) error) (models.FormModel, error) {
	i := slices.IndexFunc(m.FuelingEquipments, func(e models.FuelingEquipment) bool { return e.ID == id })
	if i < 0 {
		return m, fmt.Errorf("%w: fueling equipment %q", ErrNotFound, id)
	}
	out := Clone(m)
	if err := edit(&out.FuelingEquipments[i]); err != nil {
		return m, err
	}
	return out, nil
}

// RemoveFuelingEquipment drops the equipment with the given id.
func RemoveFuelingEquipment(m models.FormModel, id string) (models.FormModel, error) {
	i := slices.IndexFunc(m.FuelingEquipments, func(e models.FuelingEquipment) bool { return e.ID == id })
	if i < 0 {
		return m, fmt.Errorf("%w: fueling equipment %q", ErrNotFound, id)
	}
	out := Clone(m)
	out.FuelingEquipments = slices.Delete(out.FuelingEquipments, i, i+1)
	return out, nil
}
