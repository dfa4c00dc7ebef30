package ecs

import "iter"

// Query is a View whose matches are collected once per frame. The Scheduler
// calls Execute before the owning system runs.
type Query[T any] struct {
	view             *View[T]
	storage          *Storage
	cachedArchetypes []*Archetype
	archetypeCount   int

	cached     []T
	cacheValid bool
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.archetypeCount = -1
	q.cached = nil
	q.cacheValid = false
}

// Execute rebuilds the match list.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.archetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.GetArchetypes() {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.archetypeCount = n
	}

	q.cached = q.cached[:0]
	for _, archetype := range q.cachedArchetypes {
		for item := range q.view.iterArchetype(archetype) {
			q.cached = append(q.cached, item)
		}
	}
	q.cacheValid = true
}

// Iter yields the matches collected by the last Execute. It panics if
// Execute has never run.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for _, item := range q.cached {
			if !yield(item) {
				return
			}
		}
	}
}

// Len returns the number of matches from the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cached)
}

// First returns the first match, if any.
func (q *Query[T]) First() (T, bool) {
	if !q.cacheValid || len(q.cached) == 0 {
		var zero T
		return zero, false
	}
	return q.cached[0], true
}
