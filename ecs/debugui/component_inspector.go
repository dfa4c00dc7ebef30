package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/breakout/ecs"
)

// ComponentInspector shows and edits the components of one entity. Edits
// write straight through the component pointers held by the storage.
type ComponentInspector struct {
	selectedEntityId ecs.EntityId
}

func NewComponentInspector() ComponentInspector {
	return ComponentInspector{}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	archetypeId := ci.selectedEntityId.ArchetypeId()
	archetype := storage.GetArchetypeById(archetypeId)
	if archetype == nil || !storage.Alive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d not found", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetypeId))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(ci.selectedEntityId, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			renderStruct(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func renderStruct(val reflect.Value) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal)
	}
}

func renderField(name string, val reflect.Value) {
	label := "##" + name

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var v int32
		if val.CanInt() {
			v = int32(val.Int())
		} else {
			v = int32(val.Uint())
		}
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			setField(val, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			setField(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setField(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			setField(val, v)
		}

	case reflect.Array:
		if !renderFloatArray(name, val) {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderStruct(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

// renderFloatArray edits [2]float32, [3]float32 and [4]float32 values such
// as vectors and colours in place.
func renderFloatArray(name string, val reflect.Value) bool {
	if val.Type().Elem().Kind() != reflect.Float32 || !val.CanAddr() {
		return false
	}

	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(220)

	label := "##" + name
	ptr := val.Addr().UnsafePointer()
	switch val.Len() {
	case 2:
		imgui.InputFloat2(label, (*[2]float32)(ptr))
	case 3:
		imgui.InputFloat3(label, (*[3]float32)(ptr))
	case 4:
		imgui.InputFloat4(label, (*[4]float32)(ptr))
	default:
		return false
	}
	return true
}

// setField assigns value to field, converting between numeric kinds. It
// reports false when the field cannot be set or the value does not fit,
// such as a negative number for an unsigned field.
func setField(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}

	switch v := value.(type) {
	case int64:
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if field.OverflowInt(v) {
				return false
			}
			field.SetInt(v)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if v < 0 || field.OverflowUint(uint64(v)) {
				return false
			}
			field.SetUint(uint64(v))
		case reflect.Float32, reflect.Float64:
			field.SetFloat(float64(v))
		default:
			return false
		}
	case float64:
		if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
			return false
		}
		field.SetFloat(v)
	case bool:
		if field.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(v)
	case string:
		if field.Kind() != reflect.String {
			return false
		}
		field.SetString(v)
	default:
		return false
	}
	return true
}
