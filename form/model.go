// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"errors"
	"fmt"
	"slices"

	"github.com/danielhkuo/hydrogen-intake/models"
)

var (
	ErrInvalidEnumValue  = errors.New("invalid enum value")
	ErrNotFound          = errors.New("item not found")
	ErrUnknownPreference = errors.New("unknown preference")
	ErrUnknownCommand    = errors.New("unknown command")
)

// Preference keys
const (
	KeyApproach            = "approach"
	KeyMobileFeatures      = "mobileFeatures"
	KeyUndergroundType     = "undergroundType"
	KeyFuelingCapacity     = "fuelingCapacity"
	KeyFuelCells           = "fuelCells"
	KeyH2Production        = "h2Production"
	KeyCombustion          = "combustion"
	KeySpecialAtmospheres  = "specialAtmospheres"
	KeyMetalHydrideStorage = "metalHydrideStorage"
)

// Closed choices per enum preference key
var enumChoices = map[string][]string{
	KeyApproach:        {models.ApproachPrescriptive, models.ApproachPerformance, models.ApproachBoth},
	KeyUndergroundType: {models.UndergroundSome, models.UndergroundAllAbove},
}

var (
	phases   = []string{models.PhaseLiquid, models.PhaseGaseous}
	places   = []string{models.LocationIndoor, models.LocationOutdoor}
	accesses = []string{models.AccessPublic, models.AccessNonpublic}
)

// EnumChoices returns the allowed values for an enum preference key, or nil
// if key is not an enum preference.
func EnumChoices(key string) []string {
	return slices.Clone(enumChoices[key])
}

// DefaultPreferences is the template restored by Reset.
func DefaultPreferences() models.Preferences {
	return models.Preferences{
		Approach:            models.ApproachPrescriptive,
		MobileFeatures:      false,
		UndergroundType:     models.UndergroundAllAbove,
		FuelingCapacity:     false,
		FuelCells:           false,
		H2Production:        false,
		Combustion:          false,
		SpecialAtmospheres:  false,
		MetalHydrideStorage: false,
	}
}

// Default returns the model a session starts with.
func Default() models.FormModel {
	return models.FormModel{
		Preferences:       DefaultPreferences(),
		StorageDevices:    []models.StorageDevice{},
		FuelingEquipments: []models.FuelingEquipment{},
	}
}

// Clone returns a deep copy of m. Nil collections come back empty so the
// JSON form always carries arrays.
func Clone(m models.FormModel) models.FormModel {
	out := models.FormModel{
		Preferences:       m.Preferences,
		StorageDevices:    append([]models.StorageDevice{}, m.StorageDevices...),
		FuelingEquipments: append([]models.FuelingEquipment{}, m.FuelingEquipments...),
	}
	if m.Location != nil {
		loc := *m.Location
		out.Location = &loc
	}
	return out
}

func checkChoice(field, value string, choices []string) error {
	if !slices.Contains(choices, value) {
		return fmt.Errorf("%w: %s must be one of %q, got %q", ErrInvalidEnumValue, field, choices, value)
	}
	return nil
}

// flagField maps a boolean preference key to its field in p.
func flagField(p *models.Preferences, key string) *bool {
	switch key {
	case KeyMobileFeatures:
		return &p.MobileFeatures
	case KeyFuelingCapacity:
		return &p.FuelingCapacity
	case KeyFuelCells:
		return &p.FuelCells
	case KeyH2Production:
		return &p.H2Production
	case KeyCombustion:
		return &p.Combustion
	case KeySpecialAtmospheres:
		return &p.SpecialAtmospheres
	case KeyMetalHydrideStorage:
		return &p.MetalHydrideStorage
	}
	return nil
}

// enumField maps an enum preference key to its field in p.
func enumField(p *models.Preferences, key string) *string {
	switch key {
	case KeyApproach:
		return &p.Approach
	case KeyUndergroundType:
		return &p.UndergroundType
	}
	return nil
}
