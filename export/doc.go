// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export turns a live form model into a submission.

# Submit

	exp := export.NewExporter(sink)
	res, err := exp.Submit(ctx, model, export.FormatCSV, bridge)

Submit:

 1. captures a FormSnapshot stamped with an ISO-8601 UTC timestamp
 2. encodes it as CSV or indented JSON
 3. appends it to the submission log through the Sink, tagged
    "submission-<n>" where n is the log length after the append
 4. forwards it to the host window (FORM_SUBMISSION)

A Sink failure is wrapped in ErrPersistenceFailure and reported in
Result.PersistErr; steps 2 and 4 still complete.

# CSV Layout

	Timestamp,Approach,...,StorageDevicesCount,FuelingEquipmentsCount
	"2025-03-01T12:00:00.000Z","Prescriptive",...,"2","1"

	Storage Devices:
	Name,Type,Location,Sprinklers,ExhaustedEnclosure,Quantity,MaxPressure,MaxDiameter
	"Storage Device 1","Gaseous","Outdoor","false","false","","",""

	Fueling Equipment:
	Name,Location,DispensedAs,PublicAccess
	"Fueling Equipment 1","Outdoor","Gaseous","Public"

Every value is quoted. Embedded double quotes are doubled. When the form
has a site location, Country and State columns follow the counts.

# Downloads

The file name embeds the capture time with colons replaced:

	hydrogen-form-submission-2025-03-01T12-00-00.csv

# Sinks

Sink implementations hold the whole log under LogKey and rewrite it on
every append (last write wins). MemorySink is the in-process version; the
db and remote packages provide SQL and S3 versions.
*/
package export
