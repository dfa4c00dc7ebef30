package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct shape. T is a struct whose fields are
// pointers to component types; an EntityId field (usually embedded) receives
// the entity's id. Named pointer fields tagged `ecs:"optional"` may be nil.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Transform
//		Tint *Tint `ecs:"optional"`
//	}](storage)
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

// NewView builds a view for T. It panics when T is not a struct of component
// pointers.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			isOptional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Get returns the view struct for id, or nil when the entity lacks a required
// component.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !v.matchesArchetype(archetype) {
		return nil
	}

	var result T
	if !v.populate(unsafe.Pointer(&result), archetype, int(id.Index()), v.columnsFor(archetype)) {
		return nil
	}
	return &result
}

// GetRef is Get for an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

// Iter yields every matching entity. Mutating components through the yielded
// pointers is fine; spawning or deleting while iterating is not.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, archetype := range v.storage.GetArchetypes() {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for item := range v.iterArchetype(archetype) {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

// columnsFor maps each view field to its column in archetype, -1 if absent.
func (v *View[T]) columnsFor(archetype *Archetype) []int {
	columns := make([]int, len(v.types))
	for i, t := range v.types {
		idx, ok := archetype.columns[t]
		if !ok {
			idx = -1
		}
		columns[i] = idx
	}
	return columns
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(archetype.storages) == 0 {
			return
		}
		columns := v.columnsFor(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for slot := range archetype.storages[0].Iter() {
			if !v.populate(resultPtr, archetype, slot, columns) {
				continue
			}
			if !yield(result) {
				return
			}
		}
	}
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, slot int, columns []int) bool {
	for i, column := range columns {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var component any
		if column != -1 {
			component = archetype.storages[column].Get(slot)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = reflect.ValueOf(component).UnsafePointer()
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = NewEntityId(archetype.id, uint32(slot))
	}
	return true
}
