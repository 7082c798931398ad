package ecs

import (
	"fmt"

	"github.com/rs/zerolog"
)

func logArchetype(l *zerolog.Logger, a *Archetype) {
	ev := l.Debug()
	if !ev.Enabled() {
		return
	}
	ev.Uint32("archetype", uint32(a.id)).
		Str("components", fmt.Sprint(a.components)).
		Int("sparse", len(a.sparseComponents))
	if a.hasTable {
		ev = ev.Uint32("table", uint32(a.table))
	}
	ev.Msg("archetype created")
}

func logTable(l *zerolog.Logger, t *Table) {
	l.Debug().
		Uint32("table", uint32(t.id)).
		Str("components", fmt.Sprint(t.components)).
		Msg("table created")
}

func logEdge(l *zerolog.Logger, op string, from, to ArchetypeId, b *Bundle) {
	l.Debug().
		Str("op", op).
		Uint32("bundle", uint32(b.id)).
		Uint32("from", uint32(from)).
		Uint32("to", uint32(to)).
		Msg("archetype edge cached")
}

func logEntity(l *zerolog.Logger, level zerolog.Level, msg string, e Entity, loc EntityLocation) {
	l.WithLevel(level).
		Stringer("entity", e).
		Uint32("archetype", uint32(loc.Archetype)).
		Int("archetype_row", loc.ArchetypeRow).
		Int("table_row", loc.TableRow).
		Msg(msg)
}
