package main

import (
	"reflect"

	"github.com/plus3/ecstore/ecs"
)

// Marker components. C, D and E live in tables, S in sparse sets.
type (
	C0 struct{}
	C1 struct{}
	C2 struct{}
	C3 struct{}
	C4 struct{}
	C5 struct{}
	C6 struct{}
	C7 struct{}
	C8 struct{}
	C9 struct{}
	C10 struct{}
	C11 struct{}
	C12 struct{}
	C13 struct{}
	C14 struct{}
	C15 struct{}
	C16 struct{}
	C17 struct{}
	C18 struct{}
	C19 struct{}
	C20 struct{}
	D0 struct{}
	D1 struct{}
	D2 struct{}
	D3 struct{}
	D4 struct{}
	D5 struct{}
	D6 struct{}
	D7 struct{}
	D8 struct{}
	D9 struct{}
	D10 struct{}
	D11 struct{}
	D12 struct{}
	D13 struct{}
	D14 struct{}
	D15 struct{}
	D16 struct{}
	D17 struct{}
	D18 struct{}
	D19 struct{}
	D20 struct{}
	E0 struct{}
	E1 struct{}
	E2 struct{}
	E3 struct{}
	E4 struct{}
	E5 struct{}
	E6 struct{}
	E7 struct{}
	E8 struct{}
	E9 struct{}
	E10 struct{}
	E11 struct{}
	E12 struct{}
	E13 struct{}
	E14 struct{}
	E15 struct{}
	E16 struct{}
	E17 struct{}
	E18 struct{}
	E19 struct{}
	E20 struct{}
)

type (
	S0 struct{ ecs.SparseStorage }
	S1 struct{ ecs.SparseStorage }
	S2 struct{ ecs.SparseStorage }
	S3 struct{ ecs.SparseStorage }
	S4 struct{ ecs.SparseStorage }
	S5 struct{ ecs.SparseStorage }
	S6 struct{ ecs.SparseStorage }
	S7 struct{ ecs.SparseStorage }
	S8 struct{ ecs.SparseStorage }
	S9 struct{ ecs.SparseStorage }
	S10 struct{ ecs.SparseStorage }
	S11 struct{ ecs.SparseStorage }
	S12 struct{ ecs.SparseStorage }
	S13 struct{ ecs.SparseStorage }
	S14 struct{ ecs.SparseStorage }
	S15 struct{ ecs.SparseStorage }
	S16 struct{ ecs.SparseStorage }
	S17 struct{ ecs.SparseStorage }
	S18 struct{ ecs.SparseStorage }
	S19 struct{ ecs.SparseStorage }
	S20 struct{ ecs.SparseStorage }
)

var tableComponents = []any{
	C0{}, C1{}, C2{}, C3{}, C4{}, C5{}, C6{},
	C7{}, C8{}, C9{}, C10{}, C11{}, C12{}, C13{},
	C14{}, C15{}, C16{}, C17{}, C18{}, C19{}, C20{},
	D0{}, D1{}, D2{}, D3{}, D4{}, D5{}, D6{},
	D7{}, D8{}, D9{}, D10{}, D11{}, D12{}, D13{},
	D14{}, D15{}, D16{}, D17{}, D18{}, D19{}, D20{},
	E0{}, E1{}, E2{}, E3{}, E4{}, E5{}, E6{},
	E7{}, E8{}, E9{}, E10{}, E11{}, E12{}, E13{},
	E14{}, E15{}, E16{}, E17{}, E18{}, E19{}, E20{},
}

var sparseComponents = []any{
	S0{}, S1{}, S2{}, S3{}, S4{}, S5{}, S6{},
	S7{}, S8{}, S9{}, S10{}, S11{}, S12{}, S13{},
	S14{}, S15{}, S16{}, S17{}, S18{}, S19{}, S20{},
}

// allComponents returns every marker component, table kinds first.
func allComponents() []any {
	all := make([]any, 0, len(tableComponents)+len(sparseComponents))
	all = append(all, tableComponents...)
	return append(all, sparseComponents...)
}

func RegisterAllGeneratedComponents(registry *ecs.ComponentRegistry) {
	for _, c := range allComponents() {
		registry.Register(reflect.TypeOf(c))
	}
}
