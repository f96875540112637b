package achievement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Registry is the validated, ordered achievement catalog.
// It is built once at startup and injected wherever definitions are needed.
type Registry struct {
	defs []Definition
	byID map[string]int
}

// NewRegistry validates defs and builds a registry preserving declaration order.
// Broken references and invalid conditions are programming errors in the catalog
// and are reported together. Prerequisite cycles are allowed; see Unreachable.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs: make([]Definition, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	copy(r.defs, defs)

	var problems []string
	for i, d := range r.defs {
		if strings.TrimSpace(d.ID) == "" {
			problems = append(problems, fmt.Sprintf("definition #%d has an empty id", i))
			continue
		}
		if _, dup := r.byID[d.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate achievement id %s", d.ID))
			continue
		}
		r.byID[d.ID] = i
	}

	for _, d := range r.defs {
		if d.Condition == nil {
			problems = append(problems, fmt.Sprintf("%s: missing condition", d.ID))
		} else if err := d.Condition.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: invalid %s condition: %v", d.ID, d.Condition.Type(), err))
		}
		for _, pre := range d.PrerequisiteIDs {
			if _, ok := r.byID[pre]; !ok {
				problems = append(problems, fmt.Sprintf("%s: prerequisite %s does not exist", d.ID, pre))
			}
			if pre == d.ID {
				problems = append(problems, fmt.Sprintf("%s: lists itself as a prerequisite", d.ID))
			}
		}
	}

	if len(problems) > 0 {
		return nil, errors.New("invalid achievement catalog:\n  " + strings.Join(problems, "\n  "))
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on an invalid catalog.
func MustNewRegistry(defs []Definition) *Registry {
	r, err := NewRegistry(defs)
	if err != nil {
		panic(err)
	}
	return r
}

// Definitions returns a copy of all definitions in declaration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Get looks up a definition by id.
func (r *Registry) Get(id string) (Definition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// IDs returns every achievement id in declaration order.
func (r *Registry) IDs() []string {
	return lo.Map(r.defs, func(d Definition, _ int) string { return d.ID })
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Unreachable returns, in declaration order, the ids that can never become
// eligible because their prerequisite chain contains a cycle.
func (r *Registry) Unreachable() []string {
	reachable := make(map[string]bool, len(r.defs))
	for changed := true; changed; {
		changed = false
		for _, d := range r.defs {
			if reachable[d.ID] {
				continue
			}
			if lo.EveryBy(d.PrerequisiteIDs, func(pre string) bool { return reachable[pre] }) {
				reachable[d.ID] = true
				changed = true
			}
		}
	}

	var out []string
	for _, d := range r.defs {
		if !reachable[d.ID] {
			out = append(out, d.ID)
		}
	}
	return out
}
