// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package procair

import (
	"sync"

	"github.com/canonical/procair/catalog"
)

// bindingKey identifies one cached resolution: a routine bound in a
// scope under a calling convention.
type bindingKey struct {
	routine catalog.RoutineID
	scope   string
	trigger bool
}

// bindingCache holds resolved bindings. Resolution is idempotent, so two
// goroutines missing on the same key may both run a pass; the binding
// stored first wins and later stores yield to it.
//
// The mutex must be held when accessing the bindings map.
type bindingCache struct {
	mutex    sync.RWMutex
	bindings map[bindingKey]*Binding
}

func newBindingCache() *bindingCache {
	return &bindingCache{bindings: map[bindingKey]*Binding{}}
}

func (c *bindingCache) lookup(key bindingKey) (*Binding, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	b, ok := c.bindings[key]
	return b, ok
}

// store records b under key and returns it, unless another binding got
// there first, in which case the earlier one is returned.
func (c *bindingCache) store(key bindingKey, b *Binding) *Binding {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if prior, ok := c.bindings[key]; ok {
		return prior
	}
	c.bindings[key] = b
	return b
}

// invalidate drops every binding of the given routine across scopes and
// calling conventions, reporting how many were dropped.
func (c *bindingCache) invalidate(id catalog.RoutineID) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	n := 0
	for key := range c.bindings {
		if key.routine == id {
			delete(c.bindings, key)
			n++
		}
	}
	return n
}

func (c *bindingCache) size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.bindings)
}
