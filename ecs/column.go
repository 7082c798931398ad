package ecs

import (
	"reflect"
	"unsafe"
)

const minColumnCapacity = 4

// column is a tightly packed, growable slice of one component type.
// Rows are addressed by index; removal swaps the last row into the hole.
type column struct {
	info *ComponentInfo
	data reflect.Value // []T
}

func newColumn(info *ComponentInfo, capacity int) *column {
	return &column{
		info: info,
		data: reflect.MakeSlice(reflect.SliceOf(info.Type), 0, capacity),
	}
}

func (c *column) len() int {
	return c.data.Len()
}

func (c *column) capacity() int {
	return c.data.Cap()
}

// pushZero appends a zero value and returns its row, doubling capacity when full.
func (c *column) pushZero() int {
	n := c.data.Len()
	if n == c.data.Cap() {
		c.grow(n + 1)
	}
	c.data = c.data.Slice(0, n+1)
	c.data.Index(n).SetZero()
	return n
}

func (c *column) grow(needed int) {
	newCap := max(2*c.data.Cap(), needed, minColumnCapacity)
	grown := reflect.MakeSlice(c.data.Type(), c.data.Len(), newCap)
	reflect.Copy(grown, c.data)
	c.data = grown
}

func (c *column) set(row int, v reflect.Value) {
	c.data.Index(row).Set(v)
}

func (c *column) value(row int) reflect.Value {
	return c.data.Index(row)
}

// get returns a *T pointing at the row. The pointer is invalidated by any later growth.
func (c *column) get(row int) any {
	return c.data.Index(row).Addr().Interface()
}

func (c *column) pointer(row int) unsafe.Pointer {
	return c.data.Index(row).Addr().UnsafePointer()
}

// swapRemove removes row by moving the last row into it.
func (c *column) swapRemove(row int) {
	last := c.data.Len() - 1
	if row != last {
		c.data.Index(row).Set(c.data.Index(last))
	}
	c.data.Index(last).SetZero()
	c.data = c.data.Slice(0, last)
}

func (c *column) bytes() int {
	return c.data.Len() * int(c.info.Size)
}
