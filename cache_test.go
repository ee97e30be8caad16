// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package procair

import (
	. "gopkg.in/check.v1"
)

type cacheSuite struct{}

var _ = Suite(&cacheSuite{})

func (s *cacheSuite) TestLookupEmpty(c *C) {
	cache := newBindingCache()
	_, ok := cache.lookup(bindingKey{routine: 1, scope: "examples"})
	c.Check(ok, Equals, false)
	c.Check(cache.size(), Equals, 0)
}

func (s *cacheSuite) TestStoreAndLookup(c *C) {
	cache := newBindingCache()
	key := bindingKey{routine: 1, scope: "examples"}
	b := &Binding{Routine: 1, Method: "add"}

	c.Check(cache.store(key, b), Equals, b)
	got, ok := cache.lookup(key)
	c.Assert(ok, Equals, true)
	c.Check(got, Equals, b)

	// The calling convention is part of the key.
	_, ok = cache.lookup(bindingKey{routine: 1, scope: "examples", trigger: true})
	c.Check(ok, Equals, false)
	// So is the scope.
	_, ok = cache.lookup(bindingKey{routine: 1, scope: "other"})
	c.Check(ok, Equals, false)
}

func (s *cacheSuite) TestStoreFirstWins(c *C) {
	cache := newBindingCache()
	key := bindingKey{routine: 1, scope: "examples"}
	first := &Binding{Routine: 1, Handle: 1}
	second := &Binding{Routine: 1, Handle: 2}

	c.Check(cache.store(key, first), Equals, first)
	c.Check(cache.store(key, second), Equals, first)

	got, _ := cache.lookup(key)
	c.Check(got, Equals, first)
	c.Check(cache.size(), Equals, 1)
}

func (s *cacheSuite) TestInvalidate(c *C) {
	cache := newBindingCache()
	cache.store(bindingKey{routine: 1, scope: "examples"}, &Binding{Routine: 1})
	cache.store(bindingKey{routine: 1, scope: "examples", trigger: true}, &Binding{Routine: 1})
	cache.store(bindingKey{routine: 2, scope: "examples"}, &Binding{Routine: 2})

	c.Check(cache.invalidate(1), Equals, 2)
	c.Check(cache.size(), Equals, 1)
	_, ok := cache.lookup(bindingKey{routine: 2, scope: "examples"})
	c.Check(ok, Equals, true)

	c.Check(cache.invalidate(1), Equals, 0)
}
