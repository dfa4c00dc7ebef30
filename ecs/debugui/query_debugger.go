package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/breakout/ecs"
)

// QueryDebugger previews which archetypes and how many entities a query
// over a chosen set of component types would match.
type QueryDebugger struct {
	selected           map[reflect.Type]bool
	componentTypes     []reflect.Type
	lastArchetypeCount int
}

func NewQueryDebugger() QueryDebugger {
	return QueryDebugger{
		selected:           make(map[reflect.Type]bool),
		lastArchetypeCount: -1,
	}
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if n := len(storage.GetArchetypes()); n != qd.lastArchetypeCount {
		qd.componentTypes = componentTypes(storage)
		qd.lastArchetypeCount = n
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for _, compType := range qd.componentTypes {
		selected := qd.selected[compType]
		if imgui.Checkbox(compType.String(), &selected) {
			if selected {
				qd.selected[compType] = true
			} else {
				delete(qd.selected, compType)
			}
		}
	}

	imgui.Separator()

	if len(qd.selected) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	required := make([]reflect.Type, 0, len(qd.selected))
	for t := range qd.selected {
		required = append(required, t)
	}

	matching := matchingArchetypes(storage, required)
	totalEntities := 0
	for _, arch := range matching {
		totalEntities += arch.Len()
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", totalEntities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%X", arch.ID()))

				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(arch.TypeNames(), ", "))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.Len()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// componentTypes returns every component type present in storage, sorted by name.
func componentTypes(storage *ecs.Storage) []reflect.Type {
	var types []reflect.Type
	for _, archetype := range storage.GetArchetypes() {
		for _, t := range archetype.Types() {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// matchingArchetypes returns the archetypes that carry every type in required.
func matchingArchetypes(storage *ecs.Storage, required []reflect.Type) []*ecs.Archetype {
	var matching []*ecs.Archetype
	for _, archetype := range storage.GetArchetypes() {
		ok := true
		for _, t := range required {
			if !archetype.HasComponent(t) {
				ok = false
				break
			}
		}
		if ok {
			matching = append(matching, archetype)
		}
	}
	return matching
}
