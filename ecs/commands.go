package ecs

import "reflect"

// Commands buffers structural changes so systems can request them while the storage is
// being read. The buffer is applied by Flush in a fixed order: despawns, removes,
// inserts, spawns, then deferred functions.
type Commands struct {
	spawns   [][]any
	despawns []Entity
	inserts  []insertCommand
	removes  []removeCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type insertCommand struct {
	entity     Entity
	components []any
}

type removeCommand struct {
	entity Entity
	types  []reflect.Type
}

// Defer queues a function to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Despawn queues an entity despawn.
func (c *Commands) Despawn(entity Entity) {
	c.despawns = append(c.despawns, entity)
}

// Insert queues adding components to an entity.
func (c *Commands) Insert(entity Entity, components ...any) {
	c.inserts = append(c.inserts, insertCommand{entity: entity, components: components})
}

// Remove queues removing component types from an entity.
func (c *Commands) Remove(entity Entity, types ...reflect.Type) {
	c.removes = append(c.removes, removeCommand{entity: entity, types: types})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.despawns) + len(c.inserts) + len(c.removes) + len(c.defers)
}

// Flush applies all commands to the storage and resets the buffer. Commands targeting an
// entity despawned earlier in the same flush are skipped. A failing command does not
// stop the flush; each failure is logged and the first one is returned.
func (c *Commands) Flush(storage *Storage) error {
	var firstErr error
	record := func(op string, e Entity, err error) {
		if err == nil {
			return
		}
		storage.logger.Warn().Err(err).Str("op", op).Stringer("entity", e).Msg("command failed")
		if firstErr == nil {
			firstErr = err
		}
	}

	despawned := make(map[Entity]struct{}, len(c.despawns))
	for _, e := range c.despawns {
		if _, done := despawned[e]; done {
			continue
		}
		record("despawn", e, storage.Despawn(e))
		despawned[e] = struct{}{}
	}

	for _, cmd := range c.removes {
		if _, gone := despawned[cmd.entity]; !gone {
			record("remove", cmd.entity, storage.Remove(cmd.entity, cmd.types...))
		}
	}

	for _, cmd := range c.inserts {
		if _, gone := despawned[cmd.entity]; !gone {
			record("insert", cmd.entity, storage.Insert(cmd.entity, cmd.components...))
		}
	}

	for _, components := range c.spawns {
		e, err := storage.Spawn(components...)
		record("spawn", e, err)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.inserts = c.inserts[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	return firstErr
}
