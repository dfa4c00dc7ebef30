package ecs

import (
	"hash/fnv"
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype stores every entity that has exactly the same set of component
// types, one column per type.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	columns  map[reflect.Type]int
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates an archetype for types, which must already be sorted
// with sortTypes. It panics if a type was never registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		columns:  make(map[reflect.Type]int, len(types)),
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
		a.columns[typ] = idx
	}

	return a
}

// Spawn appends one entity built from components and returns its slot.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		idx, ok := a.columns[componentType(comp)]
		if !ok {
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
		pos := a.storages[idx].Append(comp)
		if slot != -1 && pos != slot {
			panic("archetype columns out of step")
		}
		slot = pos
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component of compType stored in slot,
// or nil.
func (a *Archetype) GetComponent(slot uint32, compType reflect.Type) any {
	idx, ok := a.columns[compType]
	if !ok {
		return nil
	}
	return a.storages[idx].Get(int(slot))
}

// Delete frees slot in every column and invalidates any EntityRef to it.
func (a *Archetype) Delete(slot uint32) {
	id := NewEntityId(a.id, slot)
	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	for _, storage := range a.storages {
		storage.Delete(int(slot))
	}
}

// HasComponent reports whether the archetype has a column for compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	_, ok := a.columns[compType]
	return ok
}

// ID returns the archetype id.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the id of every live entity.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for slot := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

// TypeNames returns the component type names in column order.
func (a *Archetype) TypeNames() []string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return names
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// hashTypes derives the archetype id from the sorted type names. Zero is
// reserved so that EntityId zero never names a live entity.
func hashTypes(types []reflect.Type) uint32 {
	h := fnv.New32a()
	for _, t := range types {
		h.Write([]byte(t.PkgPath()))
		h.Write([]byte{'.'})
		h.Write([]byte(t.String()))
		h.Write([]byte{0})
	}
	id := h.Sum32()
	if id == 0 {
		id = 1
	}
	return id
}
