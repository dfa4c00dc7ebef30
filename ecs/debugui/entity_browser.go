package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/breakout/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser lists every live entity in a sortable, filterable table.
type EntityBrowser struct {
	entities      []EntityInfo
	lastShape     storageShape
	sortColumn    int
	sortAscending bool

	selectedEntityId   ecs.EntityId
	filterText         string
	filterArchetypeId  *uint32
	maxEntitiesPerPage int
	currentPage        int
}

// storageShape changes whenever an archetype is created or an entity is
// spawned or deleted.
type storageShape struct {
	archetypes int
	entities   int
}

func shapeOf(storage *ecs.Storage) storageShape {
	var shape storageShape
	for _, archetype := range storage.GetArchetypes() {
		shape.archetypes++
		shape.entities += archetype.Len()
	}
	return shape
}

func NewEntityBrowser(maxEntitiesPerPage int) EntityBrowser {
	return EntityBrowser{
		sortAscending:      true,
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
		lastShape:          storageShape{archetypes: -1},
	}
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterArchetypeId = nil
		eb.currentPage = 0
	}
	if eb.filterArchetypeId != nil {
		imgui.Text(fmt.Sprintf("Archetype filter: 0x%X", *eb.filterArchetypeId))
	}

	filtered := filterEntities(eb.entities, eb.filterText, eb.filterArchetypeId)
	totalPages := max((len(filtered)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage, 1)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.maxEntitiesPerPage
		end := min(start+eb.maxEntitiesPerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if totalPages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// refresh rebuilds the entity list when the storage changed shape and drops
// a selection whose entity is gone.
func (eb *EntityBrowser) refresh(storage *ecs.Storage) {
	if shape := shapeOf(storage); shape != eb.lastShape {
		eb.entities = collectEntities(storage)
		sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
		eb.lastShape = shape
	}
	if eb.selectedEntityId != 0 && !storage.Alive(eb.selectedEntityId) {
		eb.selectedEntityId = 0
	}
}

// FilterArchetype restricts the table to one archetype; nil clears the filter.
func (eb *EntityBrowser) FilterArchetype(id *uint32) {
	eb.filterArchetypeId = id
	eb.currentPage = 0
}

func (eb *EntityBrowser) SelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

func collectEntities(storage *ecs.Storage) []EntityInfo {
	entities := make([]EntityInfo, 0, 64)
	for _, archetype := range storage.GetArchetypes() {
		componentTypes := archetype.TypeNames()
		for entityId := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             entityId,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
			})
		}
	}
	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var order int
		switch column {
		case 1:
			order = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case 2:
			order = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 3:
			order = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		default:
			order = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -order
		}
		return order
	})
}

// filterEntities keeps entities whose id, archetype id or component type
// names contain text (case-insensitive), restricted to archetypeId when set.
func filterEntities(entities []EntityInfo, text string, archetypeId *uint32) []EntityInfo {
	if text == "" && archetypeId == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	needle := strings.ToLower(text)

	for _, entity := range entities {
		if archetypeId != nil && entity.ArchetypeID != *archetypeId {
			continue
		}

		if needle != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			archStr := fmt.Sprintf("0x%x", entity.ArchetypeID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, needle) &&
				!strings.Contains(archStr, needle) &&
				!strings.Contains(componentsStr, needle) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}
