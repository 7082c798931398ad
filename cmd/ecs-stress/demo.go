package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/plus3/ecstore/ecs"
)

// runDemo spawns every marker component on its own entity, then a handful of bundles,
// printing where each entity ends up.
func runDemo(storage *ecs.Storage, w io.Writer) error {
	for _, c := range allComponents() {
		if _, err := storage.Spawn(c); err != nil {
			return err
		}
	}

	spawns := [][]any{
		{C0{}},
		{C1{}},
		{C2{}},
		{C0{}, C1{}},
		{C0{}, C2{}},
		{C1{}, C2{}},
		{C1{}, C2{}, C3{}},
	}
	for _, bundle := range spawns {
		if _, err := testBundle(storage, w, bundle); err != nil {
			return err
		}
	}

	inserts := [][]any{{C10{}}, {C11{}}, {C12{}}, {S0{}}, {S1{}}}
	for _, insert := range inserts {
		if err := testBundleInsert(storage, w, []any{C1{}, C2{}, C3{}}, insert); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "world bundles: %d components: %d\n", storage.BundleCount(), storage.ComponentCount())
	return nil
}

func testBundle(storage *ecs.Storage, w io.Writer, bundle []any) (ecs.Entity, error) {
	e, err := storage.Spawn(bundle...)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(w, "%s: %s\n", bundleName(bundle), entityDebugStr(storage, e))
	return e, nil
}

func testBundleInsert(storage *ecs.Storage, w io.Writer, bundle, insert []any) error {
	e, err := testBundle(storage, w, bundle)
	if err != nil {
		return err
	}
	if err := storage.Insert(e, insert...); err != nil {
		return err
	}
	fmt.Fprintf(w, " after insert %s: %s\n", bundleName(insert), entityDebugStr(storage, e))
	return nil
}

func bundleName(bundle []any) string {
	names := make([]string, len(bundle))
	for i, c := range bundle {
		names[i] = fmt.Sprintf("%T", c)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func entityDebugStr(storage *ecs.Storage, e ecs.Entity) string {
	archetype, err := storage.ArchetypeOf(e)
	if err != nil {
		return err.Error()
	}
	table := "none"
	if id, ok := storage.TableOf(archetype); ok {
		table = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("archetype: %d table: %s components_sparse: %d items %d bytes",
		archetype, table, storage.ComponentCountSparse(archetype), storage.SparseBytes(archetype))
}
