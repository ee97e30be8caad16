// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package typeinfo

// node is one work item in the specialization walk: a supertype reference
// to visit, or a bindings frame that becomes current when dequeued. Frames
// are enqueued immediately before the supertypes of the class they bind, so
// by the time those supertypes are visited the frame is current.
type node struct {
	t     Type
	frame *bindings
}

// bindings maps the type variables of one generic class to the arguments
// supplied at a use site. Argument variables are pre-resolved against the
// frame current when the use site was visited, so chains of variable
// renamings collapse as the walk descends.
type bindings struct {
	formals []*TypeVar
	actuals []Type
}

func newBindings(prior *bindings, p *Parameterized) *bindings {
	actuals := append([]Type(nil), p.Args...)
	if prior != nil {
		for i, a := range actuals {
			if v, ok := a.(*TypeVar); ok {
				if r, ok := prior.resolve(v); ok {
					actuals[i] = r
				}
			}
		}
	}
	return &bindings{formals: p.Raw.TypeParams, actuals: actuals}
}

func (b *bindings) resolve(v *TypeVar) (Type, bool) {
	for i, f := range b.formals {
		if f == v && i < len(b.actuals) {
			return b.actuals[i], true
		}
	}
	return nil, false
}

// Specializes reports whether t is or specializes the generic class target,
// and returns the type arguments bound to target's parameters at the
// specialization site. The arguments slice is empty when t reaches target
// only as a raw class; an argument that cannot be reduced further is
// returned as the type variable itself. Specializes returns false when t
// does not reach target at all, and for primitives, arrays and type
// variables, which specialize nothing.
func Specializes(t Type, target *Class) ([]Type, bool) {
	var (
		latest *bindings
		actual []Type
		found  bool
		c      *Class
	)

	switch tt := t.(type) {
	case *Class:
		c = tt
		if !reaches(c, target) {
			return nil, false
		}
		if c == target {
			return []Type{}, true
		}
	case *Parameterized:
		c = tt.Raw
		if !reaches(c, target) {
			return nil, false
		}
		if c == target {
			actual = append([]Type(nil), tt.Args...)
			found = true
		} else {
			latest = newBindings(nil, tt)
		}
	default:
		return nil, false
	}

	// Walk the supertype graph breadth first, pruning branches that do
	// not reach the target, until the target class itself is visited.
	if !found {
		var pending []node
		pending = appendSupers(pending, c)
		for len(pending) > 0 {
			n := pending[0]
			pending = pending[1:]
			if n.frame != nil {
				latest = n.frame
				continue
			}
			if n.t == nil {
				continue
			}
			switch tt := n.t.(type) {
			case *Class:
				c = tt
				if c == target {
					actual = []Type{}
					found = true
				}
			case *Parameterized:
				c = tt.Raw
				if c == target {
					actual = append([]Type(nil), tt.Args...)
					found = true
				} else if reaches(c, target) {
					pending = append(pending, node{frame: newBindings(latest, tt)})
				}
			default:
				continue
			}
			if found {
				break
			}
			if !reaches(c, target) {
				continue
			}
			pending = appendSupers(pending, c)
		}
	}

	if !found {
		return nil, false
	}
	for i, a := range actual {
		v, ok := a.(*TypeVar)
		if !ok || latest == nil {
			continue
		}
		if r, ok := latest.resolve(v); ok {
			actual[i] = r
		}
	}
	return actual, true
}

func appendSupers(pending []node, c *Class) []node {
	pending = append(pending, node{t: c.Super})
	for _, it := range c.Interfaces {
		pending = append(pending, node{t: it})
	}
	return pending
}

// reaches reports whether target is c itself or appears somewhere among
// c's erased supertypes.
func reaches(c, target *Class) bool {
	if c == nil {
		return false
	}
	seen := map[*Class]bool{}
	stack := []*Class{c}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		if s := rawClass(n.Super); s != nil {
			stack = append(stack, s)
		}
		for _, it := range n.Interfaces {
			if r := rawClass(it); r != nil {
				stack = append(stack, r)
			}
		}
	}
	return false
}

// rawClass returns the erased class of a supertype reference, or nil when
// the reference is absent.
func rawClass(t Type) *Class {
	switch tt := t.(type) {
	case *Class:
		return tt
	case *Parameterized:
		return tt.Raw
	}
	return nil
}
