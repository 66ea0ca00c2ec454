// Package pipeline applies ordered transform units to a tree of component
// sources.
//
// Units are grouped into phases that always run in the same order:
//
//	import -> structural -> color -> edge -> ast -> format
//
// Each phase sees the output of the previous one, so later phases may rely
// on what earlier phases normalized (for example, color rewriting assumes
// clsx imports were already replaced by cn).
package pipeline

import (
	"fmt"
	"sort"

	"github.com/yacobolo/uitheme/internal/transform"
)

// Phase is a step of the pipeline
type Phase int

// Phases in execution order
const (
	PhaseImport Phase = iota
	PhaseStructural
	PhaseColor
	PhaseEdgeCase
	PhaseAST
	PhaseFormat
)

// Phases lists every phase in execution order
var Phases = []Phase{PhaseImport, PhaseStructural, PhaseColor, PhaseEdgeCase, PhaseAST, PhaseFormat}

func (p Phase) String() string {
	switch p {
	case PhaseImport:
		return "import"
	case PhaseStructural:
		return "structural"
	case PhaseColor:
		return "color"
	case PhaseEdgeCase:
		return "edge"
	case PhaseAST:
		return "ast"
	case PhaseFormat:
		return "format"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Stage is a unit bound to its phase
type Stage struct {
	Phase Phase
	Unit  transform.Unit
}

// Registry holds the units of a run
type Registry struct {
	stages []Stage
	names  map[string]bool
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{names: map[string]bool{}}
}

// Register adds units to phase. Names must be unique across the registry.
func (r *Registry) Register(phase Phase, units ...transform.Unit) error {
	for _, u := range units {
		name := u.Metadata().Name
		if name == "" {
			return fmt.Errorf("register %s: unit has no name", phase)
		}
		if r.names[name] {
			return fmt.Errorf("register %s: duplicate unit %q", phase, name)
		}
		r.names[name] = true
		r.stages = append(r.stages, Stage{Phase: phase, Unit: u})
	}
	return nil
}

// MustRegister is Register for static tables
func (r *Registry) MustRegister(phase Phase, units ...transform.Unit) *Registry {
	if err := r.Register(phase, units...); err != nil {
		panic(err)
	}
	return r
}

// Without returns a copy of the registry minus the named units. Unknown
// names are returned so callers can warn about typos.
func (r *Registry) Without(names ...string) (*Registry, []string) {
	drop := map[string]bool{}
	for _, n := range names {
		drop[n] = true
	}

	out := NewRegistry()
	for _, s := range r.stages {
		name := s.Unit.Metadata().Name
		if drop[name] {
			delete(drop, name)
			continue
		}
		out.names[name] = true
		out.stages = append(out.stages, s)
	}

	var unknown []string
	for n := range drop {
		unknown = append(unknown, n)
	}
	sort.Strings(unknown)
	return out, unknown
}

// Stages returns the units in execution order: by phase, then by
// registration order within a phase.
func (r *Registry) Stages() []Stage {
	out := make([]Stage, len(r.stages))
	copy(out, r.stages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Phase < out[j].Phase
	})
	return out
}

// Len returns the number of registered units
func (r *Registry) Len() int {
	return len(r.stages)
}
