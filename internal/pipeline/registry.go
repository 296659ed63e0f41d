package pipeline

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	ErrDuplicateStage = errors.New("stage already registered")
	ErrUnknownStage   = errors.New("unknown stage")
)

// Stage is one named step of the detection pipeline.
type Stage struct {
	Run         func(*State) error
	Name        string
	Description string
}

// Registry maps stage names to stages, keeping registration order.
type Registry struct {
	byName map[string]Stage
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Stage)}
}

// NewDefaultRegistry returns a registry holding the island, clean, header and
// schema stages, in that order.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range []Stage{
		{Name: StageIsland, Description: "Find the largest block of data", Run: runIsland},
		{Name: StageClean, Description: "Drop sparse columns", Run: runClean},
		{Name: StageHeader, Description: "Find the header row and column types", Run: runHeader},
		{Name: StageSchema, Description: "Map columns to statement fields", Run: runSchema},
	} {
		if err := r.Register(s); err != nil {
			panic(err) // names above are distinct
		}
	}
	return r
}

// Register adds a stage. Names must be unique and non-empty.
func (r *Registry) Register(s Stage) error {
	if s.Name == "" || s.Run == nil {
		return fmt.Errorf("invalid stage %q: name and run function are required", s.Name)
	}
	if _, ok := r.byName[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStage, s.Name)
	}
	r.byName[s.Name] = s
	r.order = append(r.order, s.Name)
	return nil
}

// Lookup returns the stage registered under name.
func (r *Registry) Lookup(name string) (Stage, error) {
	s, ok := r.byName[name]
	if !ok {
		return Stage{}, fmt.Errorf("%w: %s", ErrUnknownStage, name)
	}
	return s, nil
}

// Stages returns the registered stages in registration order.
func (r *Registry) Stages() []Stage {
	out := make([]Stage, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the registered stage names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
