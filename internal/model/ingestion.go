package model

import (
	"time"
)

// Ingestion records one detection run over a sheet so it can be reviewed
// later without re-reading the source file.
type Ingestion struct {
	CreatedAt    time.Time        `json:"created_at"`
	Source       string           `json:"source"`        // Path of the input file
	Sheet        string           `json:"sheet"`         // Sheet name inside the source
	IslandRegion string           `json:"island_region"` // Region of the detected island, before cleaning
	Region       string           `json:"region"`        // Cleaned region, header row included
	HeaderRegion string           `json:"header_region"` // Region starting at the header row
	Columns      []IngestedColumn `json:"columns,omitempty"`
	ID           int64            `json:"id"`
	HeaderRow    int              `json:"header_row"` // Zero-based header row inside the island, -1 when none
	RowCount     int              `json:"row_count"`  // Number of data rows
}

// IngestedColumn is one detected column of an ingestion.
type IngestedColumn struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Region      string `json:"region"`
	MappedField string `json:"mapped_field,omitempty"` // Schema field the column was mapped to, if any
	Position    int    `json:"position"`
}

// Column returns the column mapped to field.
func (i *Ingestion) Column(field string) (IngestedColumn, bool) {
	for _, c := range i.Columns {
		if c.MappedField == field {
			return c, true
		}
	}
	return IngestedColumn{}, false
}

// HasHeader reports whether a header row was found.
func (i *Ingestion) HasHeader() bool {
	return i.HeaderRow >= 0
}
