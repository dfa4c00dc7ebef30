package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/breakout/ecs"
)

type ArchetypeInfo struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// ArchetypeViewer lists archetypes with their entity counts. Clicking a row
// selects the archetype.
type ArchetypeViewer struct {
	archetypes     []ArchetypeInfo
	selectedArchId *uint32
	sortColumn     int
	sortAscending  bool
}

func NewArchetypeViewer() ArchetypeViewer {
	return ArchetypeViewer{
		sortColumn:    3,
		sortAscending: false,
	}
}

// Render draws the viewer and returns the archetype id clicked this frame,
// or nil.
func (av *ArchetypeViewer) Render(storage *ecs.Storage) *uint32 {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	av.archetypes = collectArchetypes(storage)
	sortArchetypes(av.archetypes, av.sortColumn, av.sortAscending)

	maxEntityCount := 0
	for _, arch := range av.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	var clickedArchId *uint32

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortArchetypes(av.archetypes, av.sortColumn, av.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selectedArchId != nil && *av.selectedArchId == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := arch.ID
				clickedArchId = &id
				av.selectedArchId = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clickedArchId
}

func collectArchetypes(storage *ecs.Storage) []ArchetypeInfo {
	stats := storage.CollectStats()
	archetypes := make([]ArchetypeInfo, 0, len(stats.ArchetypeBreakdown))
	for _, arch := range stats.ArchetypeBreakdown {
		archetypes = append(archetypes, ArchetypeInfo{
			ID:             arch.ID,
			ComponentTypes: arch.ComponentTypes,
			EntityCount:    arch.EntityCount,
		})
	}
	return archetypes
}

func sortArchetypes(archetypes []ArchetypeInfo, column int, ascending bool) {
	slices.SortStableFunc(archetypes, func(a, b ArchetypeInfo) int {
		var order int
		switch column {
		case 0:
			order = cmp.Compare(a.ID, b.ID)
		case 1:
			order = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 2:
			order = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		default:
			order = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if !ascending {
			return -order
		}
		return order
	})
}
