package debugui

import "github.com/plus3/breakout/ecs"

// Inspector bundles the generic ECS debug windows. Selecting a row in the
// entity browser opens it in the component inspector, and selecting an
// archetype in the archetype viewer filters the entity browser.
type Inspector struct {
	Browser    EntityBrowser
	Components ComponentInspector
	Archetypes ArchetypeViewer
	Queries    QueryDebugger
	Stats      PerformanceStats
}

// NewInspector creates the inspector windows.
func NewInspector(maxEntitiesPerPage, historyFrames int) *Inspector {
	return &Inspector{
		Browser:    NewEntityBrowser(maxEntitiesPerPage),
		Components: NewComponentInspector(),
		Archetypes: NewArchetypeViewer(),
		Queries:    NewQueryDebugger(),
		Stats:      NewPerformanceStats(historyFrames),
	}
}

// Render draws every inspector window. scheduler may be nil.
func (in *Inspector) Render(storage *ecs.Storage, scheduler *ecs.Scheduler, deltaTime float32) {
	in.Browser.Render(storage)
	in.Components.Render(storage, in.Browser.SelectedEntity())

	if archetypeId := in.Archetypes.Render(storage); archetypeId != nil {
		in.Browser.FilterArchetype(archetypeId)
	}

	in.Queries.Render(storage)
	in.Stats.Render(storage, scheduler, deltaTime)
}

// SpawnInspector spawns an ImguiItem that renders an Inspector every frame
// and returns the inspector.
func SpawnInspector(storage *ecs.Storage, scheduler *ecs.Scheduler) *Inspector {
	inspector := NewInspector(100, 120)
	timer := NewFrameTimer()

	storage.Spawn(ImguiItem{
		Render: func() {
			inspector.Render(storage, scheduler, timer.GetDeltaTime())
		},
	})
	return inspector
}
