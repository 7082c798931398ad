package ecs

import (
	"github.com/kamstrup/intmap"
)

// TableId identifies a table within a Storage.
type TableId uint32

// Table is column-major storage for table-kind components. There is one table per
// distinct table-kind component set, shared by every archetype with that set. All
// columns have the same length as entities at all times.
type Table struct {
	id          TableId
	components  []ComponentId
	columns     []*column
	columnIndex *intmap.Map[ComponentId, int]
	entities    []Entity
}

func newTable(id TableId, infos []*ComponentInfo, capacity int) *Table {
	t := &Table{
		id:          id,
		components:  make([]ComponentId, len(infos)),
		columns:     make([]*column, len(infos)),
		columnIndex: intmap.New[ComponentId, int](len(infos)),
		entities:    make([]Entity, 0, capacity),
	}
	for i, info := range infos {
		t.components[i] = info.Id
		t.columns[i] = newColumn(info, capacity)
		t.columnIndex.Put(info.Id, i)
	}
	return t
}

// Id returns the table's identifier.
func (t *Table) Id() TableId {
	return t.id
}

// Components returns the sorted component ids stored in this table. Do not modify.
func (t *Table) Components() []ComponentId {
	return t.components
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.entities)
}

// Capacity returns the number of rows the columns can hold before growing.
func (t *Table) Capacity() int {
	if len(t.columns) == 0 {
		return cap(t.entities)
	}
	return t.columns[0].capacity()
}

// Entities returns the entity owning each row. Do not modify.
func (t *Table) Entities() []Entity {
	return t.entities
}

// HasColumn reports whether the table stores component id.
func (t *Table) HasColumn(id ComponentId) bool {
	_, ok := t.columnIndex.Get(id)
	return ok
}

// Get returns a pointer to the value of component id at row, or nil.
func (t *Table) Get(row int, id ComponentId) any {
	col := t.column(id)
	if col == nil || row < 0 || row >= len(t.entities) {
		return nil
	}
	return col.get(row)
}

// Bytes returns the memory held by populated rows.
func (t *Table) Bytes() int {
	total := 0
	for _, col := range t.columns {
		total += col.bytes()
	}
	return total
}

func (t *Table) column(id ComponentId) *column {
	idx, ok := t.columnIndex.Get(id)
	if !ok {
		return nil
	}
	return t.columns[idx]
}

// allocateRow appends a zeroed row owned by e. The caller writes the values.
func (t *Table) allocateRow(e Entity) int {
	row := len(t.entities)
	t.entities = append(t.entities, e)
	for _, col := range t.columns {
		col.pushZero()
	}
	return row
}

// moveRow allocates a row in dst for the entity at row and copies the columns both
// tables share. The source row is left in place for the caller to swap-remove.
func (t *Table) moveRow(row int, dst *Table) int {
	dstRow := dst.allocateRow(t.entities[row])
	for i, id := range t.components {
		if col := dst.column(id); col != nil {
			col.set(dstRow, t.columns[i].value(row))
		}
	}
	return dstRow
}

// swapRemoveRow removes row by moving the last row into it. It returns the entity that
// now occupies row, or false when row was the last row.
func (t *Table) swapRemoveRow(row int) (Entity, bool) {
	last := len(t.entities) - 1
	for _, col := range t.columns {
		col.swapRemove(row)
	}
	if row == last {
		t.entities = t.entities[:last]
		return 0, false
	}
	moved := t.entities[last]
	t.entities[row] = moved
	t.entities = t.entities[:last]
	return moved, true
}
