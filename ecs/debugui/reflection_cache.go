package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes an exported field the component inspector can draw.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// fieldCache memoizes the exported fields of component types. Entries are never
// invalidated because types do not change at runtime.
type fieldCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func (c *fieldCache) get(t reflect.Type) []FieldInfo {
	if cached, ok := c.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Anonymous && field.Type.Size() == 0 {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Pointer
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	actual, _ := c.fields.LoadOrStore(t, fields)
	return actual.([]FieldInfo)
}

var componentFields fieldCache
