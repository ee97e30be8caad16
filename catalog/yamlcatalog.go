// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package catalog

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlDoc is the document shape a YAMLCatalog parses.
type yamlDoc struct {
	Types    map[TypeID]string `yaml:"types"`
	Routines []yamlRoutine     `yaml:"routines"`
}

type yamlRoutine struct {
	ID         RoutineID `yaml:"id"`
	Schema     string    `yaml:"schema"`
	Name       string    `yaml:"name"`
	Params     []TypeID  `yaml:"params"`
	Return     TypeID    `yaml:"return"`
	ReturnsSet bool      `yaml:"returns_set"`
	Volatile   bool      `yaml:"volatile"`
	Source     string    `yaml:"source"`
}

// YAMLCatalog is an in-memory catalog parsed from a YAML document. It
// serves fixtures and embedded hosts that have no catalog database.
type YAMLCatalog struct {
	routines map[RoutineID]*Routine
	order    []RoutineID
	types    map[TypeID]string
}

// NewYAMLCatalog parses data and returns the catalog it describes.
func NewYAMLCatalog(data []byte) (*YAMLCatalog, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse catalog document: %w", err)
	}

	c := &YAMLCatalog{
		routines: map[RoutineID]*Routine{},
		types:    doc.Types,
	}
	if c.types == nil {
		c.types = map[TypeID]string{}
	}
	for _, yr := range doc.Routines {
		if yr.Source == "" {
			return nil, fmt.Errorf("routine %d has no source", yr.ID)
		}
		if _, ok := c.routines[yr.ID]; ok {
			return nil, fmt.Errorf("duplicate routine %d", yr.ID)
		}
		c.routines[yr.ID] = &Routine{
			ID:         yr.ID,
			Schema:     yr.Schema,
			Name:       yr.Name,
			ParamTypes: yr.Params,
			ReturnType: yr.Return,
			ReturnsSet: yr.ReturnsSet,
			Volatile:   yr.Volatile,
			Source:     yr.Source,
		}
		c.order = append(c.order, yr.ID)
	}
	return c, nil
}

// Routine returns the routine with the given identity.
func (c *YAMLCatalog) Routine(_ context.Context, id RoutineID) (*Routine, error) {
	r, ok := c.routines[id]
	if !ok {
		return nil, fmt.Errorf("cannot read routine %d: not in catalog", id)
	}
	return r, nil
}

// Routines returns every routine in the catalog, in document order.
func (c *YAMLCatalog) Routines(_ context.Context) ([]*Routine, error) {
	routines := make([]*Routine, len(c.order))
	for i, id := range c.order {
		routines[i] = c.routines[id]
	}
	return routines, nil
}

// TypeNames returns the catalog's mapping from type identities to managed
// type names.
func (c *YAMLCatalog) TypeNames(_ context.Context) (map[TypeID]string, error) {
	return c.types, nil
}
