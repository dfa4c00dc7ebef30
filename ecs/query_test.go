package ecs_test

import (
	"testing"

	"github.com/plus3/breakout/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
		*Velocity
	}](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())

		count := 0
		for range query.Iter() {
			count++
		}
		assert.Equal(t, 3, count)
	})

	t.Run("panics without execute", func(t *testing.T) {
		fresh := ecs.NewQuery[struct{ *Position }](storage)
		assert.Panics(t, func() {
			for range fresh.Iter() {
			}
		})
		_, ok := fresh.First()
		assert.False(t, ok)
	})

	t.Run("cache is a snapshot until the next execute", func(t *testing.T) {
		query.Execute()
		storage.Spawn(Position{}, Velocity{})
		assert.Equal(t, 3, query.Len())

		query.Execute()
		assert.Equal(t, 4, query.Len())
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		storage.Spawn(Position{}, Velocity{}, Name{Value: "late"})
		query.Execute()
		assert.Equal(t, 5, query.Len())
	})

	t.Run("first", func(t *testing.T) {
		query.Execute()
		item, ok := query.First()
		assert.True(t, ok)
		assert.NotNil(t, item.Position)
		assert.NotEqual(t, ecs.EntityId(0), item.EntityId)
	})
}
