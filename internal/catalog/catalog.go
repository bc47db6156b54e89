// Package catalog resolves shift-type identifiers against the fixed standard
// table plus the custom types defined for each specialty. A Catalog is built
// per query and never mutated afterwards, so it is safe to share between
// goroutines.
package catalog

import (
	"strings"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

type Catalog struct {
	types map[string]*domain.ShiftTypeDefinition
	order []string // stable listing order: standard first, then custom as given
}

func New(customTypes []*domain.ShiftTypeDefinition) *Catalog {
	c := &Catalog{
		types: make(map[string]*domain.ShiftTypeDefinition, len(domain.StandardShiftTypes)+len(customTypes)),
		order: make([]string, 0, len(domain.StandardShiftTypes)+len(customTypes)),
	}

	for i := range domain.StandardShiftTypes {
		st := domain.StandardShiftTypes[i]
		c.types[st.ID] = &st
		c.order = append(c.order, st.ID)
	}
	for _, ct := range customTypes {
		if _, exists := c.types[ct.ID]; exists {
			// Standard ids win; the repository guarantees custom ids are
			// unique among themselves.
			continue
		}
		c.types[ct.ID] = ct
		c.order = append(c.order, ct.ID)
	}

	return c
}

// Resolve returns the definition for the id, or false if it is unknown.
func (c *Catalog) Resolve(shiftTypeID string) (*domain.ShiftTypeDefinition, bool) {
	def, ok := c.types[shiftTypeID]
	return def, ok
}

// DurationOf returns the duration in hours, or 0 for an unknown id. Callers
// summing hours rely on the zero; the rule engine must use Resolve instead so
// an unknown type is a hard rejection rather than a free shift.
func (c *Catalog) DurationOf(shiftTypeID string) float64 {
	def, ok := c.types[shiftTypeID]
	if !ok {
		return 0
	}
	return def.DurationHours
}

// All returns every definition in stable order.
func (c *Catalog) All() []*domain.ShiftTypeDefinition {
	defs := make([]*domain.ShiftTypeDefinition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.types[id])
	}
	return defs
}

// NameTaken reports whether any type, standard or custom, already carries the
// name or the abbreviation. Names and abbreviations are globally unique, and
// the standard table lives outside the database, so no constraint can catch a
// clash with it.
func (c *Catalog) NameTaken(name, abbreviation string) bool {
	for _, id := range c.order {
		def := c.types[id]
		if strings.EqualFold(def.Name, name) || strings.EqualFold(def.Abbreviation, abbreviation) {
			return true
		}
	}
	return false
}

// ForSpecialty returns the types assignable to a doctor of the given
// specialty: all global types plus the custom types scoped to it.
func (c *Catalog) ForSpecialty(specialty string) []*domain.ShiftTypeDefinition {
	defs := make([]*domain.ShiftTypeDefinition, 0, len(c.order))
	for _, id := range c.order {
		def := c.types[id]
		if def.Specialty == "" || def.Specialty == specialty {
			defs = append(defs, def)
		}
	}
	return defs
}
