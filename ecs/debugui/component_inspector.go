package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ecstore/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render draws the components of the selected entity. Edits are written straight into
// storage through the component pointers.
func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity = selected
	if ci.selectedEntity == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	loc, ok := storage.Location(ci.selectedEntity)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %s no longer exists", ci.selectedEntity))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", ci.selectedEntity))
	imgui.Text(fmt.Sprintf("Archetype: %d (row %d)", loc.Archetype, loc.ArchetypeRow))
	if table, ok := storage.TableOf(loc.Archetype); ok {
		imgui.Text(fmt.Sprintf("Table: %d (row %d)", table, loc.TableRow))
	} else {
		imgui.Text("Table: none")
	}
	imgui.Separator()

	registry := storage.Registry()
	for _, id := range storage.Archetype(loc.Archetype).Components() {
		info := registry.Info(id)
		component := storage.GetComponent(ci.selectedEntity, info.Type)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(fmt.Sprintf("%s [%s]", info.Type, info.Kind)) {
			renderValue(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func renderValue(val reflect.Value) {
	if val.Kind() != reflect.Struct {
		renderField("value", val)
		return
	}
	for _, field := range componentFields.get(val.Type()) {
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
	label := fmt.Sprintf("##%s", name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(val)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
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
