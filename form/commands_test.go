// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/hydrogen-intake/ids"
	"github.com/danielhkuo/hydrogen-intake/models"
)

// countingIDs hands out predictable ids
type countingIDs struct{ n int }

func (c *countingIDs) Next(prefix string) string {
	c.n++
	return prefix + "-" + strconv.Itoa(c.n)
}

func mustApply(t *testing.T, r *Reducer, m models.FormModel, cmd Command) models.FormModel {
	t.Helper()

	out, err := r.Apply(m, cmd)
	if err != nil {
		t.Fatalf("Apply(%s) error = %v", cmd.Kind(), err)
	}
	return out
}

func TestReducer_DeviceEdits(t *testing.T) {
	r := NewReducer(&countingIDs{})
	m := mustApply(t, r, Default(), AddDevice{})
	id := m.StorageDevices[0].ID

	if id != "sd-1" {
		t.Fatalf("expected id sd-1, got %s", id)
	}

	m = mustApply(t, r, m, RenameDevice{ID: id, Name: "Tank Farm"})
	m = mustApply(t, r, m, SetDeviceType{ID: id, Type: models.PhaseLiquid})
	m = mustApply(t, r, m, SetDeviceLocation{ID: id, Location: models.LocationIndoor})
	m = mustApply(t, r, m, SetDeviceSprinklers{ID: id, Value: true})
	m = mustApply(t, r, m, SetDeviceExhaustedEnclosure{ID: id, Value: true})
	m = mustApply(t, r, m, SetDeviceQuantity{ID: id, Value: "1500"})
	m = mustApply(t, r, m, SetDeviceMaxPressure{ID: id, Value: "150 psi"})
	m = mustApply(t, r, m, SetDeviceMaxDiameter{ID: id, Value: "2 in"})

	want := models.StorageDevice{
		ID:                 id,
		Name:               "Tank Farm",
		Type:               models.PhaseLiquid,
		Location:           models.LocationIndoor,
		Sprinklers:         true,
		ExhaustedEnclosure: true,
		Quantity:           "1500",
		MaxPressure:        "150 psi",
		MaxDiameter:        "2 in",
	}
	if diff := cmp.Diff(want, m.StorageDevices[0]); diff != "" {
		t.Errorf("device (-want +got):\n%s", diff)
	}
	if m.StorageDevices[0].QuantityUnit() != models.UnitGallons {
		t.Errorf("expected gal for liquid storage")
	}
}

func TestReducer_LocationRoundTripKeepsIndoorFields(t *testing.T) {
	r := NewReducer(&countingIDs{})
	m := mustApply(t, r, Default(), AddDevice{})
	id := m.StorageDevices[0].ID

	m = mustApply(t, r, m, SetDeviceLocation{ID: id, Location: models.LocationIndoor})
	m = mustApply(t, r, m, SetDeviceSprinklers{ID: id, Value: true})
	m = mustApply(t, r, m, SetDeviceExhaustedEnclosure{ID: id, Value: true})
	m = mustApply(t, r, m, SetDeviceLocation{ID: id, Location: models.LocationOutdoor})

	d := m.StorageDevices[0]
	if d.IndoorOptionsApply() {
		t.Error("indoor options should not apply outdoors")
	}
	if !d.Sprinklers || !d.ExhaustedEnclosure {
		t.Error("indoor fields lost when moving outdoors")
	}

	m = mustApply(t, r, m, SetDeviceLocation{ID: id, Location: models.LocationIndoor})
	d = m.StorageDevices[0]
	if !d.IndoorOptionsApply() || !d.Sprinklers || !d.ExhaustedEnclosure {
		t.Errorf("indoor fields did not round-trip: %+v", d)
	}
}

func TestReducer_EquipmentEdits(t *testing.T) {
	r := NewReducer(&countingIDs{})
	m := mustApply(t, r, Default(), AddEquipment{})
	id := m.FuelingEquipments[0].ID

	m = mustApply(t, r, m, RenameEquipment{ID: id, Name: "Dispenser A"})
	m = mustApply(t, r, m, SetEquipmentLocation{ID: id, Location: models.LocationIndoor})
	m = mustApply(t, r, m, SetEquipmentDispensedAs{ID: id, Value: models.PhaseLiquid})
	m = mustApply(t, r, m, SetEquipmentPublicAccess{ID: id, Value: models.AccessNonpublic})

	want := models.FuelingEquipment{
		ID:           "fe-1",
		Name:         "Dispenser A",
		Location:     models.LocationIndoor,
		DispensedAs:  models.PhaseLiquid,
		PublicAccess: models.AccessNonpublic,
	}
	if diff := cmp.Diff(want, m.FuelingEquipments[0]); diff != "" {
		t.Errorf("equipment (-want +got):\n%s", diff)
	}

	m = mustApply(t, r, m, RemoveEquipment{ID: id})
	if len(m.FuelingEquipments) != 0 {
		t.Errorf("expected no equipment, got %d", len(m.FuelingEquipments))
	}
}

func TestReducer_Errors(t *testing.T) {
	r := NewReducer(&countingIDs{})
	m := mustApply(t, r, Default(), AddDevice{})
	m = mustApply(t, r, m, AddEquipment{})
	devID := m.StorageDevices[0].ID
	eqID := m.FuelingEquipments[0].ID

	tests := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{"device type", SetDeviceType{ID: devID, Type: "Plasma"}, ErrInvalidEnumValue},
		{"device location", SetDeviceLocation{ID: devID, Location: "Basement"}, ErrInvalidEnumValue},
		{"equipment location", SetEquipmentLocation{ID: eqID, Location: "Roof"}, ErrInvalidEnumValue},
		{"equipment dispensed", SetEquipmentDispensedAs{ID: eqID, Value: "Solid"}, ErrInvalidEnumValue},
		{"equipment access", SetEquipmentPublicAccess{ID: eqID, Value: "Private"}, ErrInvalidEnumValue},
		{"approach", SetChoice{Key: KeyApproach, Value: "Hybrid"}, ErrInvalidEnumValue},
		{"rename missing device", RenameDevice{ID: "sd-99", Name: "x"}, ErrNotFound},
		{"remove missing device", RemoveDevice{ID: "sd-99"}, ErrNotFound},
		{"rename missing equipment", RenameEquipment{ID: "fe-99", Name: "x"}, ErrNotFound},
		{"remove missing equipment", RemoveEquipment{ID: "fe-99"}, ErrNotFound},
		{"device id used for equipment", RenameEquipment{ID: devID, Name: "x"}, ErrNotFound},
		{"unknown flag", SetFlag{Key: "electrolyzer", Value: true}, ErrUnknownPreference},
		{"nil command", nil, ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, err := r.Apply(m, tt.cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(m, after); diff != "" {
				t.Errorf("model changed on error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReducer_RapidAddsUnique(t *testing.T) {
	r := NewReducer(ids.NewSequence())
	m := Default()
	for i := 0; i < 200; i++ {
		m = mustApply(t, r, m, AddDevice{})
		m = mustApply(t, r, m, AddEquipment{})
	}

	seen := make(map[string]bool)
	for _, d := range m.StorageDevices {
		if seen[d.ID] {
			t.Fatalf("duplicate device id %s", d.ID)
		}
		seen[d.ID] = true
	}
	for _, e := range m.FuelingEquipments {
		if seen[e.ID] {
			t.Fatalf("duplicate equipment id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestReducer_ResetAfterHistory(t *testing.T) {
	r := NewReducer(nil)
	m := Default()
	for _, cmd := range []Command{
		SetFlag{Key: KeySpecialAtmospheres, Value: true},
		SetChoice{Key: KeyUndergroundType, Value: models.UndergroundSome},
		SetSite{Country: "US", State: "CA"},
		AddDevice{},
		AddDevice{},
		AddEquipment{},
	} {
		m = mustApply(t, r, m, cmd)
	}

	m = mustApply(t, r, m, ResetForm{})
	if diff := cmp.Diff(Default(), m); diff != "" {
		t.Errorf("ResetForm (-want +got):\n%s", diff)
	}
}

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    Command
		wantErr error
	}{
		{
			name: "set flag",
			env:  `{"type":"SetFlag","payload":{"key":"fuelingCapacity","value":true}}`,
			want: &SetFlag{Key: KeyFuelingCapacity, Value: true},
		},
		{
			name: "set choice",
			env:  `{"type":"SetChoice","payload":{"key":"approach","value":"Performance"}}`,
			want: &SetChoice{Key: KeyApproach, Value: models.ApproachPerformance},
		},
		{
			name: "add device without payload",
			env:  `{"type":"AddDevice"}`,
			want: &AddDevice{},
		},
		{
			name: "reset with null payload",
			env:  `{"type":"ResetForm","payload":null}`,
			want: &ResetForm{},
		},
		{
			name: "device quantity",
			env:  `{"type":"SetDeviceQuantity","payload":{"id":"sd-1","value":"250"}}`,
			want: &SetDeviceQuantity{ID: "sd-1", Value: "250"},
		},
		{
			name:    "unknown type",
			env:     `{"type":"updateField","payload":{"id":"sd-1","field":"name","value":"x"}}`,
			wantErr: ErrUnknownCommand,
		},
		{
			name:    "wrong payload shape",
			env:     `{"type":"SetFlag","payload":{"key":"fuelCells","value":"yes"}}`,
			wantErr: ErrUnknownCommand,
		},
		{
			name:    "misspelled payload field",
			env:     `{"type":"SetFlag","payload":{"key":"fuelCells","vaule":true}}`,
			wantErr: ErrUnknownCommand,
		},
		{
			name:    "payload field of another command",
			env:     `{"type":"RenameDevice","payload":{"id":"sd-1","name":"Tank A","location":"Indoor"}}`,
			wantErr: ErrUnknownCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env models.CommandEnvelope
			if err := json.Unmarshal([]byte(tt.env), &env); err != nil {
				t.Fatalf("bad test envelope: %v", err)
			}

			got, err := DecodeCommand(env)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCommand() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeCommand() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeCommand_AllKindsRegistered(t *testing.T) {
	for kind, newCmd := range commandTypes {
		if got := newCmd().Kind(); got != kind {
			t.Errorf("registry key %q builds command of kind %q", kind, got)
		}
	}
}
