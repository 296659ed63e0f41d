// Package pipeline chains island detection, cleaning, header detection and
// schema mapping into a single run over a grid.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/sift/internal/clean"
	"github.com/Veraticus/sift/internal/grid"
	"github.com/Veraticus/sift/internal/header"
	"github.com/Veraticus/sift/internal/island"
	"github.com/Veraticus/sift/internal/model"
	"github.com/Veraticus/sift/internal/schema"
	"github.com/Veraticus/sift/internal/sheet"
)

// Default stage names.
const (
	StageIsland = "island"
	StageClean  = "clean"
	StageHeader = "header"
	StageSchema = "schema"
)

// Options tunes a pipeline run.
type Options struct {
	StartRow     int     // Zero-based row the island search starts at
	HeaderWindow int     // Rows scanned for the header
	Threshold    float64 // Minimum column density kept by the cleaner
	SampleRows   int     // Rows below the header used for type votes
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		StartRow:     0,
		HeaderWindow: header.DefaultSearchWindow,
		Threshold:    clean.DefaultThreshold,
		SampleRows:   header.SampleRows,
	}
}

// State is passed from stage to stage.
type State struct {
	Grid         grid.Grid // Current working grid
	Columns      []int     // Zero-based sheet column of each Grid column
	IslandRegion string
	Region       string
	Header       header.Result
	Mapping      schema.Mapping
	Options      Options
}

// Result is the JSON-friendly outcome of a run.
type Result struct {
	Source       string              `json:"source,omitempty"`
	Sheet        string              `json:"sheet,omitempty"`
	IslandRegion string              `json:"island_region"`
	Region       string              `json:"region"`
	HeaderRegion string              `json:"header_region"`
	Columns      []string            `json:"columns"`
	ColumnInfo   []header.ColumnInfo `json:"column_info"`
	Mapping      schema.Mapping      `json:"mapping"`
	Body         grid.Grid           `json:"body"`
	HeaderRow    int                 `json:"header_row"`
	StartRow     int                 `json:"start_row"`
	RowCount     int                 `json:"row_count"`
}

// Found reports whether a header row was detected.
func (r *Result) Found() bool {
	return r.HeaderRow >= 0
}

// Ingestion converts the result to a history record.
func (r *Result) Ingestion() *model.Ingestion {
	ing := &model.Ingestion{
		Source:       r.Source,
		Sheet:        r.Sheet,
		IslandRegion: r.IslandRegion,
		Region:       r.Region,
		HeaderRegion: r.HeaderRegion,
		HeaderRow:    r.HeaderRow,
		RowCount:     r.RowCount,
		Columns:      make([]model.IngestedColumn, 0, len(r.ColumnInfo)),
	}

	fields := make(map[int]schema.Field, len(r.Mapping.Assignments))
	for _, a := range r.Mapping.Assignments {
		fields[a.Index] = a.Field
	}
	for i, c := range r.ColumnInfo {
		ing.Columns = append(ing.Columns, model.IngestedColumn{
			Position:    i,
			Name:        c.Name,
			Type:        string(c.Type),
			Region:      c.Region,
			MappedField: string(fields[i]),
		})
	}
	return ing
}

// Pipeline runs registered stages in order.
type Pipeline struct {
	registry *Registry
}

// New creates a pipeline over registry. A nil registry uses
// NewDefaultRegistry.
func New(registry *Registry) *Pipeline {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	return &Pipeline{registry: registry}
}

// Run coerces source to a grid and runs every stage over it. A source that
// is not a two-dimensional table is not an error: the result has HeaderRow
// -1 and no columns. The context is checked between stages.
func (p *Pipeline) Run(ctx context.Context, source any, opts Options) (*Result, error) {
	g, ok := grid.Coerce(source)
	if !ok {
		slog.Debug("Input is not a grid", "type", fmt.Sprintf("%T", source))
		return emptyResult(), nil
	}

	state := &State{Grid: g, Options: opts}
	for _, stage := range p.registry.Stages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stage.Run(state); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name, err)
		}
	}

	return resultFrom(state), nil
}

func emptyResult() *Result {
	return &Result{
		HeaderRow:  -1,
		Columns:    []string{},
		ColumnInfo: []header.ColumnInfo{},
		Mapping:    schema.Map(nil),
		Body:       grid.Grid{},
	}
}

func resultFrom(s *State) *Result {
	h := s.Header
	if h.Columns == nil {
		h.HeaderRow = -1
		h.Columns = []string{}
		h.ColumnInfo = []header.ColumnInfo{}
	}
	if s.Mapping.Assignments == nil {
		s.Mapping = schema.Map(h.ColumnInfo)
	}

	body := h.Table.Rows
	if body == nil {
		body = grid.Grid{}
	}

	return &Result{
		IslandRegion: s.IslandRegion,
		Region:       s.Region,
		HeaderRegion: h.Region,
		Columns:      h.Columns,
		ColumnInfo:   h.ColumnInfo,
		Mapping:      s.Mapping,
		Body:         body,
		HeaderRow:    h.HeaderRow,
		StartRow:     h.StartRow,
		RowCount:     len(body),
	}
}

func runIsland(s *State) error {
	isl := island.Locate(s.Grid, s.Options.StartRow)
	s.IslandRegion, s.Grid, s.Columns = isl.Region, isl.Grid, isl.Columns
	s.Region = s.IslandRegion
	return nil
}

func runClean(s *State) error {
	var kept []int
	s.Grid, s.Region, kept = clean.CleanColumns(s.Grid, s.Region, s.Options.Threshold)

	cols := make([]int, 0, len(kept))
	for _, k := range kept {
		if k < len(s.Columns) {
			cols = append(cols, s.Columns[k])
		}
	}
	if len(cols) != len(kept) {
		cols = nil
	}
	s.Columns = cols
	return nil
}

// runHeader feeds the header detector the zero-based sheet row the island
// starts at.
func runHeader(s *State) error {
	startRow := 0
	if r, ok := sheet.ParseRegion(s.Region); ok {
		startRow = r.StartRow - 1
	}
	s.Header = header.Find(s.Grid, s.Region, startRow, header.Options{
		Window:     s.Options.HeaderWindow,
		SampleRows: s.Options.SampleRows,
		Columns:    s.Columns,
	})
	return nil
}

func runSchema(s *State) error {
	s.Mapping = schema.Map(s.Header.ColumnInfo)
	return nil
}
