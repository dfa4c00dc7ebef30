package ecs

import "iter"

// iComponentStorage is the type-erased column an archetype keeps per component.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}
