// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/hydrogen-intake/form"
	"github.com/danielhkuo/hydrogen-intake/models"
)

// TimestampLayout matches JavaScript's Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Capture stamps a copy of model with the capture time.
func Capture(model models.FormModel, at time.Time) models.FormSnapshot {
	return models.FormSnapshot{
		FormModel: form.Clone(model),
		Timestamp: at.UTC().Format(TimestampLayout),
	}
}

const (
	csvHeader          = "Timestamp,Approach,MobileFeatures,UndergroundType,FuelingCapacity,FuelCells,H2Production,Combustion,SpecialAtmospheres,MetalHydrideStorage,StorageDevicesCount,FuelingEquipmentsCount"
	csvLocationHeader  = ",Country,State"
	csvDeviceHeader    = "Name,Type,Location,Sprinklers,ExhaustedEnclosure,Quantity,MaxPressure,MaxDiameter"
	csvEquipmentHeader = "Name,Location,DispensedAs,PublicAccess"
)

// quote wraps a field in double quotes. Embedded quotes are doubled so the
// row still parses.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(f))
	}
	b.WriteByte('\n')
}

// EncodeCSV renders a snapshot as a preferences row followed by a
// "Storage Devices:" section and a "Fueling Equipment:" section. Section
// headers are written only when the section has rows.
func EncodeCSV(snap models.FormSnapshot) string {
	var b strings.Builder
	p := snap.Preferences

	b.WriteString(csvHeader)
	if snap.Location != nil {
		b.WriteString(csvLocationHeader)
	}
	b.WriteByte('\n')

	row := []string{
		snap.Timestamp,
		p.Approach,
		strconv.FormatBool(p.MobileFeatures),
		p.UndergroundType,
		strconv.FormatBool(p.FuelingCapacity),
		strconv.FormatBool(p.FuelCells),
		strconv.FormatBool(p.H2Production),
		strconv.FormatBool(p.Combustion),
		strconv.FormatBool(p.SpecialAtmospheres),
		strconv.FormatBool(p.MetalHydrideStorage),
		strconv.Itoa(len(snap.StorageDevices)),
		strconv.Itoa(len(snap.FuelingEquipments)),
	}
	if snap.Location != nil {
		row = append(row, snap.Location.Country, snap.Location.State)
	}
	writeRow(&b, row...)

	b.WriteString("\nStorage Devices:\n")
	if len(snap.StorageDevices) > 0 {
		b.WriteString(csvDeviceHeader + "\n")
		for _, d := range snap.StorageDevices {
			writeRow(&b,
				d.Name,
				d.Type,
				d.Location,
				strconv.FormatBool(d.Sprinklers),
				strconv.FormatBool(d.ExhaustedEnclosure),
				d.Quantity,
				d.MaxPressure,
				d.MaxDiameter,
			)
		}
	}

	b.WriteString("\nFueling Equipment:\n")
	if len(snap.FuelingEquipments) > 0 {
		b.WriteString(csvEquipmentHeader + "\n")
		for _, e := range snap.FuelingEquipments {
			writeRow(&b, e.Name, e.Location, e.DispensedAs, e.PublicAccess)
		}
	}

	return b.String()
}

// EncodeJSON renders a snapshot as indented JSON.
func EncodeJSON(snap models.FormSnapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}
