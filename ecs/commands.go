package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The Scheduler
// applies them after the last system, in the order deletes, removes, adds,
// spawns, then deferred functions.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after the structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues a new entity.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the deletion of entity.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues adding component to entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues removing compType from entity.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies every queued command to storage and empties the buffer.
// Adds and removes aimed at an entity deleted in the same flush are dropped.
// An entity moved by a remove is still found by a later add.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	current := make(map[EntityId]EntityId)
	resolve := func(id EntityId) EntityId {
		if moved, ok := current[id]; ok {
			return moved
		}
		return id
	}

	for _, cmd := range c.removes {
		if deleted[cmd.entity] {
			continue
		}
		current[cmd.entity] = storage.RemoveComponent(resolve(cmd.entity), cmd.compType)
	}

	for _, cmd := range c.adds {
		if deleted[cmd.entity] {
			continue
		}
		current[cmd.entity] = storage.AddComponent(resolve(cmd.entity), cmd.component)
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	defers := c.defers
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = nil

	for _, fn := range defers {
		fn()
	}
}
