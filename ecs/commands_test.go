package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/breakout/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlush(t *testing.T) {
	t.Run("spawn", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		cmds := ecs.NewCommandsForTest()

		cmds.Spawn(Position{X: 1}, Velocity{})
		cmds.Spawn(Position{X: 2})
		assert.Equal(t, 2, cmds.Len())
		assert.Equal(t, 0, storage.CollectStats().TotalEntityCount)

		cmds.Flush(storage)
		assert.Equal(t, 2, storage.CollectStats().TotalEntityCount)
		assert.Equal(t, 0, cmds.Len())
	})

	t.Run("delete drops later add", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		cmds := ecs.NewCommandsForTest()
		id := storage.Spawn(Position{})

		cmds.AddComponent(id, Velocity{})
		cmds.Delete(id)
		cmds.Flush(storage)

		assert.False(t, storage.Alive(id))
		assert.Equal(t, 0, storage.CollectStats().TotalEntityCount)
	})

	t.Run("remove then add on the same entity", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		cmds := ecs.NewCommandsForTest()
		id := storage.Spawn(Position{X: 3}, Velocity{})

		cmds.RemoveComponent(id, reflect.TypeFor[Velocity]())
		cmds.AddComponent(id, Health{Current: 1})
		cmds.Flush(storage)

		view := ecs.NewView[struct {
			*Position
			*Health
			Velocity *Velocity `ecs:"optional"`
		}](storage)

		count := 0
		for item := range view.Iter() {
			count++
			assert.Equal(t, float32(3), item.Position.X)
			assert.Nil(t, item.Velocity)
		}
		assert.Equal(t, 1, count)
	})

	t.Run("defers run after structural changes", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		cmds := ecs.NewCommandsForTest()

		var seen int
		cmds.Defer(func() { seen = storage.CollectStats().TotalEntityCount })
		cmds.Spawn(Position{})
		cmds.Flush(storage)

		assert.Equal(t, 1, seen)
	})

	t.Run("defer may queue more commands", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		cmds := ecs.NewCommandsForTest()

		cmds.Defer(func() { cmds.Spawn(Position{}) })
		cmds.Flush(storage)
		require.Equal(t, 1, cmds.Len())

		cmds.Flush(storage)
		assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
	})
}
